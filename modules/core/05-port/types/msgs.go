package types

import (
	errorsmod "cosmossdk.io/errors"

	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
)

// MsgBindPort defines a message binding a port to the module that will own
// every channel end opened on it.
type MsgBindPort struct {
	PortId string `json:"port_id"` //nolint:revive
	Module string `json:"module"`
}

// MsgBindPortResponse defines the Msg/BindPort response type.
type MsgBindPortResponse struct{}

// NewMsgBindPort creates a new MsgBindPort instance
func NewMsgBindPort(portID, module string) *MsgBindPort {
	return &MsgBindPort{
		PortId: portID,
		Module: module,
	}
}

// ValidateBasic performs stateless checks of the message.
func (msg MsgBindPort) ValidateBasic() error {
	return validatePortModule(msg.PortId, msg.Module)
}

// MsgReleasePort defines a message unbinding a port from the module owning it.
type MsgReleasePort struct {
	PortId string `json:"port_id"` //nolint:revive
	Module string `json:"module"`
}

// MsgReleasePortResponse defines the Msg/ReleasePort response type.
type MsgReleasePortResponse struct{}

func NewMsgReleasePort(portID, module string) *MsgReleasePort {
	return &MsgReleasePort{
		PortId: portID,
		Module: module,
	}
}

// ValidateBasic performs stateless checks of the message.
func (msg MsgReleasePort) ValidateBasic() error {
	return validatePortModule(msg.PortId, msg.Module)
}

func validatePortModule(portID, module string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if !moduleNameRegexp.MatchString(module) {
		return errorsmod.Wrapf(ErrInvalidRoute, "invalid module name %q", module)
	}
	return nil
}
