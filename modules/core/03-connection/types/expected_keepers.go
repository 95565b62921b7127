package types

import (
	"context"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// ClientKeeper is the subset of the client keeper the connection keeper
// verifies counterparty state through.
type ClientKeeper interface {
	GetClientStatus(ctx context.Context, clientID string) exported.Status
	GetClientState(ctx context.Context, clientID string) (exported.ClientState, bool)
	VerifyMembership(
		ctx context.Context, clientID string, height exported.Height,
		proof []byte, path exported.Path, value []byte,
	) error
}
