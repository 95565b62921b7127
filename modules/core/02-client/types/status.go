package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// ValidateStatus returns nil for an Active client and otherwise the error that
// reports the status: ErrClientFrozen, ErrClientNotFound or ErrClientNotActive.
func ValidateStatus(status exported.Status, clientID string) error {
	switch status {
	case exported.Active:
		return nil
	case exported.Frozen:
		return errorsmod.Wrapf(ErrClientFrozen, "client (%s)", clientID)
	case exported.Unknown:
		return errorsmod.Wrapf(ErrClientNotFound, "client (%s)", clientID)
	default:
		return errorsmod.Wrapf(ErrClientNotActive, "client (%s) status is %s", clientID, status)
	}
}
