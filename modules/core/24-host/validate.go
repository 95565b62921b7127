package host

import (
	"regexp"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// Length bounds, in bytes, of the identifiers that appear in store paths.
const (
	MaxIdentifierLength     = 64
	MaxPortIdentifierLength = 128

	minClientIDLength     = 9
	minConnectionIDLength = 10
	minChannelIDLength    = 8
	minPortIDLength       = 2
)

const allowedSpecialChars = "._+-#[]<>"

var identifierCharset = regexp.MustCompile(`^[a-zA-Z0-9._+\-#\[\]<>]+$`)

func validateIdentifier(kind, id string, minLen, maxLen int) error {
	switch {
	case strings.TrimSpace(id) == "":
		return errorsmod.Wrapf(ErrInvalidID, "%s identifier cannot be blank", kind)
	case strings.Contains(id, "/"):
		return errorsmod.Wrapf(ErrInvalidID, "%s identifier %q contains the path separator", kind, id)
	case len(id) < minLen || len(id) > maxLen:
		return errorsmod.Wrapf(ErrInvalidID, "%s identifier %q has length %d, want %d to %d", kind, id, len(id), minLen, maxLen)
	case !identifierCharset.MatchString(id):
		return errorsmod.Wrapf(ErrInvalidID, "%s identifier %q may only hold alphanumerics and %q", kind, id, allowedSpecialChars)
	}
	return nil
}

// ClientIdentifierValidator accepts client identifiers of 9 to 64 characters.
func ClientIdentifierValidator(id string) error {
	return validateIdentifier("client", id, minClientIDLength, MaxIdentifierLength)
}

// ConnectionIdentifierValidator accepts connection identifiers of 10 to 64 characters.
func ConnectionIdentifierValidator(id string) error {
	return validateIdentifier("connection", id, minConnectionIDLength, MaxIdentifierLength)
}

// ChannelIdentifierValidator accepts channel identifiers of 8 to 64 characters.
func ChannelIdentifierValidator(id string) error {
	return validateIdentifier("channel", id, minChannelIDLength, MaxIdentifierLength)
}

// PortIdentifierValidator accepts port identifiers of 2 to 128 characters.
func PortIdentifierValidator(id string) error {
	return validateIdentifier("port", id, minPortIDLength, MaxPortIdentifierLength)
}
