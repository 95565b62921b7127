package types

import (
	errorsmod "cosmossdk.io/errors"
)

// IBC port sentinel errors
var (
	ErrPortExists   = errorsmod.Register(SubModuleName, 2, "port is already binded")
	ErrInvalidPort  = errorsmod.Register(SubModuleName, 4, "invalid port")
	ErrInvalidRoute = errorsmod.Register(SubModuleName, 5, "route not found")
	ErrPortNotBound = errorsmod.Register(SubModuleName, 6, "port is not bound")
	ErrPortNotOwned = errorsmod.Register(SubModuleName, 7, "port is bound to another module")
)
