package validate

import (
	errorsmod "cosmossdk.io/errors"

	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
)

// PortChannel validates that the portID and channelID of a query request are valid identifiers.
func PortChannel(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return errorsmod.Wrapf(err, "invalid port %q", portID)
	}

	if err := host.ChannelIdentifierValidator(channelID); err != nil {
		return errorsmod.Wrapf(err, "invalid channel %q", channelID)
	}

	return nil
}
