package types

import (
	"context"

	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// The channel keeper reads client status, connection ends and port bindings
// through these interfaces and never writes to the other submodules.

type ClientKeeper interface {
	GetClientStatus(ctx context.Context, clientID string) exported.Status
}

type ConnectionKeeper interface {
	GetConnection(ctx context.Context, connectionID string) (connectiontypes.ConnectionEnd, bool)
	// VerifyChannelState proves channelBz is stored for portID/channelID on
	// the counterparty of connection.
	VerifyChannelState(
		ctx context.Context, connection connectiontypes.ConnectionEnd,
		height exported.Height, proof []byte,
		portID, channelID string, channelBz []byte,
	) error
}

type PortKeeper interface {
	IsBound(ctx context.Context, portID string) bool
}
