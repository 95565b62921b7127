package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
)

// Msg is implemented by every message the IBC module accepts.
type Msg interface {
	ValidateBasic() error
}

// Datagram is the envelope a relayer exchanges between generating a message
// against one chain and submitting it to the other.
type Datagram struct {
	Type string          `json:"type"`
	Msg  json.RawMessage `json:"msg"`
}

// Datagram types, one per accepted message.
const (
	TypeCreateClient          = "client/create"
	TypeUpdateClient          = "client/update"
	TypeConnectionOpenInit    = "connection/open-init"
	TypeConnectionOpenTry     = "connection/open-try"
	TypeConnectionOpenAck     = "connection/open-ack"
	TypeConnectionOpenConfirm = "connection/open-confirm"
	TypeBindPort              = "port/bind"
	TypeReleasePort           = "port/release"
	TypeChannelOpenInit       = "channel/open-init"
	TypeChannelOpenTry        = "channel/open-try"
	TypeChannelOpenAck        = "channel/open-ack"
	TypeChannelOpenConfirm    = "channel/open-confirm"
)

var msgConstructors = map[string]func() Msg{
	TypeCreateClient:          func() Msg { return &clienttypes.MsgCreateClient{} },
	TypeUpdateClient:          func() Msg { return &clienttypes.MsgUpdateClient{} },
	TypeConnectionOpenInit:    func() Msg { return &connectiontypes.MsgConnectionOpenInit{} },
	TypeConnectionOpenTry:     func() Msg { return &connectiontypes.MsgConnectionOpenTry{} },
	TypeConnectionOpenAck:     func() Msg { return &connectiontypes.MsgConnectionOpenAck{} },
	TypeConnectionOpenConfirm: func() Msg { return &connectiontypes.MsgConnectionOpenConfirm{} },
	TypeBindPort:              func() Msg { return &porttypes.MsgBindPort{} },
	TypeReleasePort:           func() Msg { return &porttypes.MsgReleasePort{} },
	TypeChannelOpenInit:       func() Msg { return &channeltypes.MsgChannelOpenInit{} },
	TypeChannelOpenTry:        func() Msg { return &channeltypes.MsgChannelOpenTry{} },
	TypeChannelOpenAck:        func() Msg { return &channeltypes.MsgChannelOpenAck{} },
	TypeChannelOpenConfirm:    func() Msg { return &channeltypes.MsgChannelOpenConfirm{} },
}

// MsgType returns the datagram type of a message.
func MsgType(msg Msg) (string, error) {
	switch msg.(type) {
	case *clienttypes.MsgCreateClient:
		return TypeCreateClient, nil
	case *clienttypes.MsgUpdateClient:
		return TypeUpdateClient, nil
	case *connectiontypes.MsgConnectionOpenInit:
		return TypeConnectionOpenInit, nil
	case *connectiontypes.MsgConnectionOpenTry:
		return TypeConnectionOpenTry, nil
	case *connectiontypes.MsgConnectionOpenAck:
		return TypeConnectionOpenAck, nil
	case *connectiontypes.MsgConnectionOpenConfirm:
		return TypeConnectionOpenConfirm, nil
	case *porttypes.MsgBindPort:
		return TypeBindPort, nil
	case *porttypes.MsgReleasePort:
		return TypeReleasePort, nil
	case *channeltypes.MsgChannelOpenInit:
		return TypeChannelOpenInit, nil
	case *channeltypes.MsgChannelOpenTry:
		return TypeChannelOpenTry, nil
	case *channeltypes.MsgChannelOpenAck:
		return TypeChannelOpenAck, nil
	case *channeltypes.MsgChannelOpenConfirm:
		return TypeChannelOpenConfirm, nil
	default:
		return "", errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized IBC message type: %T", msg)
	}
}

// NewDatagram wraps a message into a datagram.
func NewDatagram(msg Msg) (Datagram, error) {
	msgType, err := MsgType(msg)
	if err != nil {
		return Datagram{}, err
	}

	bz, err := json.Marshal(msg)
	if err != nil {
		return Datagram{}, fmt.Errorf("failed to encode %s message: %w", msgType, err)
	}

	return Datagram{Type: msgType, Msg: bz}, nil
}

// UnpackMsg decodes the message carried by the datagram.
func (d Datagram) UnpackMsg() (Msg, error) {
	constructor, ok := msgConstructors[d.Type]
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized datagram type: %s", d.Type)
	}

	msg := constructor()
	if err := json.Unmarshal(d.Msg, msg); err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrEncoding, "failed to decode %s message: %v", d.Type, err)
	}

	return msg, nil
}
