package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// State defines if a connection is in one of the following states:
// INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State int32

const (
	// Default State
	UNINITIALIZED State = 0
	// A connection end has just started the opening handshake.
	INIT State = 1
	// A connection end has acknowledged the handshake step on the counterparty
	// chain.
	TRYOPEN State = 2
	// A connection end has completed the handshake.
	OPEN State = 3
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
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
	return errorsmod.Wrapf(ErrInvalidConnectionState, "unknown connection state %s", text)
}

// MarshalYAML renders the state by name.
func (s State) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ConnectionEnd defines a stateful object on a chain connected to another
// separate one.
type ConnectionEnd struct {
	// client associated with this connection.
	ClientId string `json:"client_id" yaml:"client_id"` //nolint:revive
	// IBC version which can be utilised to determine encodings or protocols for
	// channels or packets utilising this connection.
	Versions []*Version `json:"versions" yaml:"versions"`
	// current state of the connection end.
	State State `json:"state" yaml:"state"`
	// counterparty chain associated with this connection.
	Counterparty Counterparty `json:"counterparty" yaml:"counterparty"`
	// delay period that must pass before a consensus state can be used for
	// packet-verification NOTE: delay period logic is only implemented by some
	// clients.
	DelayPeriod uint64 `json:"delay_period" yaml:"delay_period"`
}

// NewConnectionEnd creates a new ConnectionEnd instance.
func NewConnectionEnd(state State, clientID string, counterparty Counterparty, versions []*Version, delayPeriod uint64) ConnectionEnd {
	return ConnectionEnd{
		ClientId:     clientID,
		Versions:     versions,
		State:        state,
		Counterparty: counterparty,
		DelayPeriod:  delayPeriod,
	}
}

// GetClientID returns the client the connection end verifies the counterparty with.
func (c ConnectionEnd) GetClientID() string {
	return c.ClientId
}

// ValidateBasic checks the identifiers, versions and counterparty of the
// connection end. The connection and client IDs may equal the counterparty's.
func (c ConnectionEnd) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid client ID")
	}
	if len(c.Versions) == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidVersion, "empty connection versions")
	}
	for _, version := range c.Versions {
		if err := ValidateVersion(version); err != nil {
			return err
		}
	}
	return c.Counterparty.ValidateBasic()
}

// Marshal encodes the connection end with the ibc.core.connection.v1.ConnectionEnd layout.
// This is the value committed to the IBC store and proven to the counterparty.
func (c ConnectionEnd) Marshal() []byte {
	bz := wire.AppendString(nil, 1, c.ClientId)
	for _, version := range c.Versions {
		bz = wire.AppendMessage(bz, 2, version.Marshal())
	}
	bz = wire.AppendUvarint(bz, 3, uint64(c.State))
	bz = wire.AppendMessage(bz, 4, c.Counterparty.Marshal())
	return wire.AppendUvarint(bz, 5, c.DelayPeriod)
}

// Unmarshal decodes an ibc.core.connection.v1.ConnectionEnd.
func (c *ConnectionEnd) Unmarshal(bz []byte) error {
	var connection ConnectionEnd
	err := wire.Range(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			connection.ClientId = string(f.Bytes)
		case 2:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			version := &Version{}
			if err := version.Unmarshal(f.Bytes); err != nil {
				return err
			}
			connection.Versions = append(connection.Versions, version)
		case 3:
			if err := wire.ExpectType(f, protowire.VarintType); err != nil {
				return err
			}
			connection.State = State(f.Varint)
		case 4:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			return connection.Counterparty.Unmarshal(f.Bytes)
		case 5:
			if err := wire.ExpectType(f, protowire.VarintType); err != nil {
				return err
			}
			connection.DelayPeriod = f.Varint
		}
		return nil
	})
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrEncoding, "failed to unmarshal connection end: %v", err)
	}
	*c = connection
	return nil
}

// Counterparty defines the counterparty chain associated with a connection end.
type Counterparty struct {
	// identifies the client on the counterparty chain associated with a given
	// connection.
	ClientId string `json:"client_id" yaml:"client_id"` //nolint:revive
	// identifies the connection end on the counterparty chain associated with a
	// given connection.
	ConnectionId string `json:"connection_id" yaml:"connection_id"` //nolint:revive
	// commitment merkle prefix of the counterparty chain.
	Prefix commitmenttypes.MerklePrefix `json:"prefix" yaml:"prefix"`
}

// NewCounterparty creates a new Counterparty instance.
func NewCounterparty(clientID, connectionID string, prefix commitmenttypes.MerklePrefix) Counterparty {
	return Counterparty{
		ClientId:     clientID,
		ConnectionId: connectionID,
		Prefix:       prefix,
	}
}

// GetPrefix returns the prefix the counterparty commits its IBC state under.
func (c Counterparty) GetPrefix() exported.Prefix {
	return &c.Prefix
}

// ValidateBasic performs a basic validation check of the identifiers and prefix
func (c Counterparty) ValidateBasic() error {
	if c.ConnectionId != "" {
		if err := host.ConnectionIdentifierValidator(c.ConnectionId); err != nil {
			return errorsmod.Wrap(err, "invalid counterparty connection ID")
		}
	}

	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty client ID")
	}

	if c.Prefix.Empty() {
		return errorsmod.Wrap(ErrInvalidCounterparty, "counterparty prefix cannot be empty")
	}
	return nil
}

// Marshal encodes the counterparty with the ibc.core.connection.v1.Counterparty layout.
func (c Counterparty) Marshal() []byte {
	bz := wire.AppendString(nil, 1, c.ClientId)
	bz = wire.AppendString(bz, 2, c.ConnectionId)
	return wire.AppendMessage(bz, 3, c.Prefix.Marshal())
}

// Unmarshal decodes an ibc.core.connection.v1.Counterparty.
func (c *Counterparty) Unmarshal(bz []byte) error {
	var counterparty Counterparty
	err := wire.Range(bz, func(f wire.Field) error {
		if f.Num < 1 || f.Num > 3 {
			return nil
		}
		if err := wire.ExpectType(f, protowire.BytesType); err != nil {
			return err
		}
		switch f.Num {
		case 1:
			counterparty.ClientId = string(f.Bytes)
		case 2:
			counterparty.ConnectionId = string(f.Bytes)
		case 3:
			return counterparty.Prefix.Unmarshal(f.Bytes)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*c = counterparty
	return nil
}

// IdentifiedConnection defines a connection with additional connection
// identifier field.
type IdentifiedConnection struct {
	// connection identifier.
	Id            string `json:"id" yaml:"id"` //nolint:revive
	ConnectionEnd `yaml:",inline"`
}

// NewIdentifiedConnection creates a new IdentifiedConnection instance
func NewIdentifiedConnection(connectionID string, conn ConnectionEnd) IdentifiedConnection {
	return IdentifiedConnection{
		Id:            connectionID,
		ConnectionEnd: conn,
	}
}
