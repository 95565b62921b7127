package types

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName is the error codespace
const SubModuleName string = "commitment"

// IBC connection sentinel errors
var (
	ErrMalformedProof          = errorsmod.Register(SubModuleName, 2, "malformed commitment proof")
	ErrInvalidPrefix           = errorsmod.Register(SubModuleName, 3, "invalid prefix")
	ErrRootMismatch            = errorsmod.Register(SubModuleName, 4, "commitment root mismatch")
	ErrKeyMismatch             = errorsmod.Register(SubModuleName, 5, "proof key does not match requested key")
	ErrProofVerificationFailed = errorsmod.Register(SubModuleName, 6, "proof verification failed")
	ErrInvalidMerklePath       = errorsmod.Register(SubModuleName, 7, "invalid merkle path")
)

// IsProofError reports whether err was raised while checking a commitment proof,
// as opposed to while locating the trusted root it is checked against.
func IsProofError(err error) bool {
	return errorsmod.IsOf(err, ErrMalformedProof, ErrRootMismatch, ErrKeyMismatch, ErrInvalidMerklePath)
}
