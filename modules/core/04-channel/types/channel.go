package types

import (
	"fmt"
	"slices"

	errorsmod "cosmossdk.io/errors"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
)

// State defines if a channel is in one of the following states:
// CLOSED, INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State int32

const (
	// Default State
	UNINITIALIZED State = 0
	// A channel has just started the opening handshake.
	INIT State = 1
	// A channel has acknowledged the handshake step on the counterparty chain.
	TRYOPEN State = 2
	// A channel has completed the handshake. Open channels are
	// ready to send and receive packets.
	OPEN State = 3
	// A channel has been closed and can no longer be used to send or receive
	// packets.
	CLOSED State = 4
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
	CLOSED:        "STATE_CLOSED",
}

// String implements the Stringer interface.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int32(s))
}

// MarshalText renders the state by name in JSON datagrams and query output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return errorsmod.Wrapf(ErrInvalidChannelState, "unknown channel state %s", text)
}

// MarshalYAML renders the state by name.
func (s State) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Order defines if a channel is ORDERED or UNORDERED
type Order int32

const (
	// zero-value for channel ordering
	NONE Order = 0
	// packets can be delivered in any order, which may differ from the order in
	// which they were sent.
	UNORDERED Order = 1
	// packets are delivered exactly in the order which they were sent
	ORDERED Order = 2
)

var orderNames = map[Order]string{
	NONE:      "ORDER_NONE_UNSPECIFIED",
	UNORDERED: "ORDER_UNORDERED",
	ORDERED:   "ORDER_ORDERED",
}

// String implements the Stringer interface. The names of ORDERED and UNORDERED
// match the connection version features.
func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("ORDER_%d", int32(o))
}

// MarshalText renders the ordering by name.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses an ordering name. The short forms "ordered" and
// "unordered" are accepted as well.
func (o *Order) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ordered":
		*o = ORDERED
		return nil
	case "unordered":
		*o = UNORDERED
		return nil
	}
	for order, name := range orderNames {
		if name == string(text) {
			*o = order
			return nil
		}
	}
	return errorsmod.Wrapf(ErrInvalidChannelOrdering, "unknown channel ordering %s", text)
}

// MarshalYAML renders the ordering by name.
func (o Order) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// SubsetOf returns true if the provided Order is a valid subset of Order.
// ORDERED channels can be downgraded to UNORDERED but not the other way around.
func (o Order) SubsetOf(order Order) bool {
	switch o {
	case ORDERED:
		return order == ORDERED || order == UNORDERED
	case UNORDERED:
		return order == UNORDERED
	default:
		return false
	}
}

// Channel defines pipeline for exactly-once packet delivery between specific
// modules on separate blockchains, which has at least one end capable of
// sending packets and one end capable of receiving packets.
type Channel struct {
	// current state of the channel end
	State State `json:"state" yaml:"state"`
	// whether the channel is ordered or unordered
	Ordering Order `json:"ordering" yaml:"ordering"`
	// counterparty channel end
	Counterparty Counterparty `json:"counterparty" yaml:"counterparty"`
	// list of connection identifiers, in order, along which packets sent on
	// this channel will travel
	ConnectionHops []string `json:"connection_hops" yaml:"connection_hops"`
	// opaque channel version, which is agreed upon during the handshake
	Version string `json:"version" yaml:"version"`
}

// NewChannel creates a new Channel instance
func NewChannel(
	state State, ordering Order, counterparty Counterparty,
	hops []string, version string,
) Channel {
	return Channel{
		State:          state,
		Ordering:       ordering,
		Counterparty:   counterparty,
		ConnectionHops: hops,
		Version:        version,
	}
}

// ValidateBasic performs a basic validation of the channel fields
func (ch Channel) ValidateBasic() error {
	if ch.State == UNINITIALIZED {
		return ErrInvalidChannelState
	}
	if !slices.Contains([]Order{ORDERED, UNORDERED}, ch.Ordering) {
		return errorsmod.Wrap(ErrInvalidChannelOrdering, ch.Ordering.String())
	}
	if len(ch.ConnectionHops) != 1 {
		return errorsmod.Wrap(
			ErrTooManyConnectionHops,
			"current IBC version only supports one connection hop",
		)
	}
	if err := host.ConnectionIdentifierValidator(ch.ConnectionHops[0]); err != nil {
		return errorsmod.Wrap(err, "invalid connection hop ID")
	}
	return ch.Counterparty.ValidateBasic()
}

// Marshal encodes the channel end with the ibc.core.channel.v1.Channel layout.
// This is the value committed to the IBC store and proven to the counterparty.
func (ch Channel) Marshal() []byte {
	bz := wire.AppendUvarint(nil, 1, uint64(ch.State))
	bz = wire.AppendUvarint(bz, 2, uint64(ch.Ordering))
	bz = wire.AppendMessage(bz, 3, ch.Counterparty.Marshal())
	bz = wire.AppendRepeatedString(bz, 4, ch.ConnectionHops)
	return wire.AppendString(bz, 5, ch.Version)
}

// Unmarshal decodes an ibc.core.channel.v1.Channel.
func (ch *Channel) Unmarshal(bz []byte) error {
	var channel Channel
	err := wire.Range(bz, func(f wire.Field) error {
		switch f.Num {
		case 1, 2:
			if err := wire.ExpectType(f, protowire.VarintType); err != nil {
				return err
			}
			if f.Num == 1 {
				channel.State = State(f.Varint)
			} else {
				channel.Ordering = Order(f.Varint)
			}
		case 3:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			return channel.Counterparty.Unmarshal(f.Bytes)
		case 4:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			channel.ConnectionHops = append(channel.ConnectionHops, string(f.Bytes))
		case 5:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			channel.Version = string(f.Bytes)
		}
		return nil
	})
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrEncoding, "failed to unmarshal channel end: %v", err)
	}
	*ch = channel
	return nil
}

// Counterparty defines a channel end counterparty
type Counterparty struct {
	// port on the counterparty chain which owns the other end of the channel.
	PortId string `json:"port_id" yaml:"port_id"` //nolint:revive
	// channel end on the counterparty chain
	ChannelId string `json:"channel_id" yaml:"channel_id"` //nolint:revive
}

// NewCounterparty returns a new Counterparty instance
func NewCounterparty(portID, channelID string) Counterparty {
	return Counterparty{
		PortId:    portID,
		ChannelId: channelID,
	}
}

// ValidateBasic performs a basic validation check of the identifiers
func (c Counterparty) ValidateBasic() error {
	if err := host.PortIdentifierValidator(c.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty port ID")
	}
	if c.ChannelId != "" {
		if err := host.ChannelIdentifierValidator(c.ChannelId); err != nil {
			return errorsmod.Wrap(err, "invalid counterparty channel ID")
		}
	}
	return nil
}

// Marshal encodes the counterparty with the ibc.core.channel.v1.Counterparty layout.
func (c Counterparty) Marshal() []byte {
	bz := wire.AppendString(nil, 1, c.PortId)
	return wire.AppendString(bz, 2, c.ChannelId)
}

// Unmarshal decodes an ibc.core.channel.v1.Counterparty.
func (c *Counterparty) Unmarshal(bz []byte) error {
	var counterparty Counterparty
	err := wire.Range(bz, func(f wire.Field) error {
		if f.Num != 1 && f.Num != 2 {
			return nil
		}
		if err := wire.ExpectType(f, protowire.BytesType); err != nil {
			return err
		}
		if f.Num == 1 {
			counterparty.PortId = string(f.Bytes)
		} else {
			counterparty.ChannelId = string(f.Bytes)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*c = counterparty
	return nil
}

// IdentifiedChannel defines a channel with additional port and channel
// identifier fields.
type IdentifiedChannel struct {
	// port identifier
	PortId string `json:"port_id" yaml:"port_id"` //nolint:revive
	// channel identifier
	ChannelId string `json:"channel_id" yaml:"channel_id"` //nolint:revive
	Channel   `yaml:",inline"`
}

// NewIdentifiedChannel creates a new IdentifiedChannel instance
func NewIdentifiedChannel(portID, channelID string, ch Channel) IdentifiedChannel {
	return IdentifiedChannel{
		PortId:    portID,
		ChannelId: channelID,
		Channel:   ch,
	}
}
