package ibctesting

import (
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/testing/mock"
)

const (
	// DefaultDelayPeriod is the connection delay period used by default.
	DefaultDelayPeriod uint64 = 0

	// DefaultChannelVersion is the channel version the mock application accepts.
	DefaultChannelVersion = mock.Version

	// MockPort is the port bound to the mock application.
	MockPort = mock.PortID

	// identifiers handed out first on a fresh chain
	FirstClientID     = "xx-eclipse-0"
	FirstConnectionID = "connection-0"
	FirstChannelID    = "channel-0"
)

// ConnectionVersion is the version proposed on connection handshakes.
var ConnectionVersion = connectiontypes.GetCompatibleVersions()[0]

type ConnectionConfig struct {
	DelayPeriod uint64
	Version     *connectiontypes.Version
}

func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DelayPeriod: DefaultDelayPeriod,
		Version:     ConnectionVersion,
	}
}

type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  mock.PortID,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}
