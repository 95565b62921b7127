package types

import (
	errorsmod "cosmossdk.io/errors"
)

// IBC channel sentinel errors
var (
	ErrChannelNotFound          = errorsmod.Register(SubModuleName, 3, "channel not found")
	ErrInvalidChannelState      = errorsmod.Register(SubModuleName, 5, "invalid channel state")
	ErrInvalidChannelOrdering   = errorsmod.Register(SubModuleName, 6, "invalid channel ordering")
	ErrInvalidCounterparty      = errorsmod.Register(SubModuleName, 7, "invalid counterparty channel")
	ErrInvalidChannelIdentifier = errorsmod.Register(SubModuleName, 8, "invalid channel identifier")
	ErrTooManyConnectionHops    = errorsmod.Register(SubModuleName, 9, "too many connection hops")
	ErrInvalidChannelVersion    = errorsmod.Register(SubModuleName, 10, "invalid channel version")
	ErrConnectionNotOpen        = errorsmod.Register(SubModuleName, 11, "connection is not open")
	ErrSequenceSendNotFound     = errorsmod.Register(SubModuleName, 12, "sequence send not found")
	ErrSequenceReceiveNotFound  = errorsmod.Register(SubModuleName, 13, "sequence receive not found")
	ErrSequenceAckNotFound      = errorsmod.Register(SubModuleName, 14, "sequence acknowledgement not found")
)
