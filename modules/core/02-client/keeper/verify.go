package keeper

import (
	"context"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// VerifyMembership retrieves the light client module for the clientID and verifies the proof of the existence of a key-value pair at a specified height.
func (k *Keeper) VerifyMembership(ctx context.Context, clientID string, height exported.Height, proof []byte, path exported.Path, value []byte) error {
	clientModule, err := k.Route(clientID)
	if err != nil {
		return err
	}

	if err := types.ValidateStatus(clientModule.Status(ctx, clientID), clientID); err != nil {
		return err
	}

	return clientModule.VerifyMembership(ctx, clientID, height, proof, path, value)
}

// VerifyNonMembership retrieves the light client module for the clientID and verifies the absence of a given key at a specified height.
func (k *Keeper) VerifyNonMembership(ctx context.Context, clientID string, height exported.Height, proof []byte, path exported.Path) error {
	clientModule, err := k.Route(clientID)
	if err != nil {
		return err
	}

	if err := types.ValidateStatus(clientModule.Status(ctx, clientID), clientID); err != nil {
		return err
	}

	return clientModule.VerifyNonMembership(ctx, clientID, height, proof, path)
}
