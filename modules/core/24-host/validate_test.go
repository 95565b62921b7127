package host_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
)

func TestIdentifierValidators(t *testing.T) {
	validators := map[string]func(string) error{
		"client":     host.ClientIdentifierValidator,
		"connection": host.ConnectionIdentifierValidator,
		"channel":    host.ChannelIdentifierValidator,
		"port":       host.PortIdentifierValidator,
	}

	testCases := []struct {
		name   string
		id     string
		expErr error
	}{
		{"client id", "xx-eclipse-0", nil},
		{"all special characters", "._+-#[]<>._+-#[]<>", nil},
		{"mixed case", "Eclipse.Chain_1", nil},
		{"digits only", "1234567890", nil},
		{"blank", "               ", host.ErrInvalidID},
		{"empty", "", host.ErrInvalidID},
		{"single character", "a", host.ErrInvalidID},
		{"path separator", "xx-eclipse/0", host.ErrInvalidID},
		{"parentheses", "(xx-eclipse-0)", host.ErrInvalidID},
		{"space inside", "xx eclipse 0", host.ErrInvalidID},
		{"too long for every kind", strings.Repeat("a", 129), host.ErrInvalidID},
	}

	for _, tc := range testCases {
		for kind, validate := range validators {
			t.Run(tc.name+"/"+kind, func(t *testing.T) {
				err := validate(tc.id)
				if tc.expErr == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, tc.expErr)
					require.Contains(t, err.Error(), kind)
				}
			})
		}
	}
}

func TestIdentifierLengthBounds(t *testing.T) {
	testCases := []struct {
		name     string
		validate func(string) error
		min, max int
	}{
		{"client", host.ClientIdentifierValidator, 9, host.MaxIdentifierLength},
		{"connection", host.ConnectionIdentifierValidator, 10, host.MaxIdentifierLength},
		{"channel", host.ChannelIdentifierValidator, 8, host.MaxIdentifierLength},
		{"port", host.PortIdentifierValidator, 2, host.MaxPortIdentifierLength},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.validate(strings.Repeat("a", tc.min)))
			require.NoError(t, tc.validate(strings.Repeat("a", tc.max)))
			require.ErrorIs(t, tc.validate(strings.Repeat("a", tc.min-1)), host.ErrInvalidID)
			require.ErrorIs(t, tc.validate(strings.Repeat("a", tc.max+1)), host.ErrInvalidID)
		})
	}
}
