package errors

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

const codespace = exported.ModuleName

// Errors shared by every IBC submodule. Submodule specific errors are
// registered in their own types packages.
var (
	ErrUnknownRequest = errorsmod.Register(codespace, 1, "unknown request")
	ErrInvalidRequest = errorsmod.Register(codespace, 2, "invalid request")
	ErrInvalidHeight  = errorsmod.Register(codespace, 3, "invalid height")
	ErrInvalidVersion = errorsmod.Register(codespace, 4, "invalid version")
	ErrInvalidType    = errorsmod.Register(codespace, 6, "invalid type")
	ErrPackAny        = errorsmod.Register(codespace, 7, "failed packing message to Any")
	ErrUnpackAny      = errorsmod.Register(codespace, 8, "failed unpacking message from Any")
	ErrNotFound       = errorsmod.Register(codespace, 10, "not found")
	ErrEncoding       = errorsmod.Register(codespace, 11, "encoding error")

	// ErrLogic is an internal invariant violation, never caused by user input.
	ErrLogic = errorsmod.Register(codespace, 9, "internal logic error")
)
