package eclipse

import (
	errorsmod "cosmossdk.io/errors"
)

// IBC eclipse client sentinel errors
var (
	ErrInvalidChainID   = errorsmod.Register(ModuleName, 2, "invalid chain-id")
	ErrInvalidRoot      = errorsmod.Register(ModuleName, 3, "invalid commitment root")
	ErrInvalidTimestamp = errorsmod.Register(ModuleName, 4, "invalid header timestamp")
)
