package simapp

import errorsmod "cosmossdk.io/errors"

const codespace = "simapp"

var (
	ErrChainInitialized    = errorsmod.Register(codespace, 2, "chain already initialized")
	ErrChainNotInitialized = errorsmod.Register(codespace, 3, "chain not initialized")
	ErrInvalidBlockTime    = errorsmod.Register(codespace, 4, "invalid block time")
)
