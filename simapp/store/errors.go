package store

import errorsmod "cosmossdk.io/errors"

const codespace = "simstore"

var (
	ErrInvalidStore    = errorsmod.Register(codespace, 2, "invalid store operation")
	ErrVersionNotFound = errorsmod.Register(codespace, 3, "store version not found")
)
