package types

import (
	errorsmod "cosmossdk.io/errors"
)

// IBC client sentinel errors
var (
	ErrInvalidClient             = errorsmod.Register(SubModuleName, 3, "light client is invalid")
	ErrClientNotFound            = errorsmod.Register(SubModuleName, 4, "light client not found")
	ErrClientFrozen              = errorsmod.Register(SubModuleName, 5, "light client is frozen due to misbehaviour")
	ErrConsensusStateNotFound    = errorsmod.Register(SubModuleName, 6, "consensus state not found")
	ErrInvalidConsensus          = errorsmod.Register(SubModuleName, 7, "invalid consensus state")
	ErrInvalidClientType         = errorsmod.Register(SubModuleName, 9, "invalid client type")
	ErrInvalidHeader             = errorsmod.Register(SubModuleName, 10, "invalid client header")
	ErrHeaderHeightNotIncreasing = errorsmod.Register(SubModuleName, 11, "header height is not greater than the latest client height")
	ErrRevisionMismatch          = errorsmod.Register(SubModuleName, 12, "header revision number does not match client revision number")
	ErrInvalidInitialState       = errorsmod.Register(SubModuleName, 13, "invalid initial client or consensus state")
	ErrClientNotActive           = errorsmod.Register(SubModuleName, 14, "client state is not active")
	ErrRouteNotFound             = errorsmod.Register(SubModuleName, 15, "light client module route not found")
)
