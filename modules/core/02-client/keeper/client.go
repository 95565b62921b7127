package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/internal/telemetry"
)

// CreateClient generates a new client identifier and isolated prefix store for the provided client state.
// The client state is responsible for setting any client-specific data in the store via the Initialize method.
// This includes the client state, initial consensus state and any associated metadata.
func (k *Keeper) CreateClient(ctx context.Context, clientType string, clientState, consensusState []byte) (string, error) {
	if err := types.ValidateClientType(clientType); err != nil {
		return "", err
	}

	if !k.router.HasRoute(clientType) {
		return "", errorsmod.Wrapf(types.ErrInvalidClientType, "no light client module registered for client type %s", clientType)
	}

	clientID := k.GenerateClientIdentifier(ctx, clientType)

	clientModule, err := k.Route(clientID)
	if err != nil {
		return "", err
	}

	if err := clientModule.Initialize(ctx, clientID, clientState, consensusState); err != nil {
		return "", err
	}

	if status := clientModule.Status(ctx, clientID); status != exported.Active {
		return "", errorsmod.Wrapf(types.ErrClientNotActive, "cannot create client (%s) with status %s", clientID, status)
	}

	k.SetNextClientSequence(ctx, k.GetNextClientSequence(ctx)+1)

	k.Logger().Info("client created at height", "client-id", clientID, "height", clientModule.LatestHeight(ctx, clientID).String())

	defer telemetry.ReportCreateClient(clientType)

	return clientID, nil
}

// UpdateClient updates the consensus state and the state root from a provided header.
// If the header conflicts with a consensus state already stored for the same height
// the client is frozen and ErrClientFrozen is returned.
func (k *Keeper) UpdateClient(ctx context.Context, clientID string, clientMsg exported.ClientMessage) ([]exported.Height, error) {
	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrClientNotFound, "clientID (%s)", clientID)
	}

	clientModule, err := k.Route(clientID)
	if err != nil {
		return nil, err
	}

	if err := types.ValidateStatus(clientModule.Status(ctx, clientID), clientID); err != nil {
		return nil, errorsmod.Wrap(err, "cannot update client")
	}

	if err := clientModule.VerifyClientMessage(ctx, clientID, clientMsg); err != nil {
		return nil, err
	}

	if foundMisbehaviour := clientModule.CheckForMisbehaviour(ctx, clientID, clientMsg); foundMisbehaviour {
		clientModule.UpdateStateOnMisbehaviour(ctx, clientID, clientMsg)

		k.Logger().Info("client frozen due to misbehaviour", "client-id", clientID)

		defer telemetry.ReportUpdateClient(foundMisbehaviour, clientType, clientID)

		return nil, errorsmod.Wrapf(types.ErrClientFrozen, "misbehaviour detected for client (%s): conflicting consensus state", clientID)
	}

	consensusHeights, err := clientModule.UpdateState(ctx, clientID, clientMsg)
	if err != nil {
		return nil, err
	}

	k.Logger().Info("client state updated", "client-id", clientID, "heights", consensusHeights)

	defer telemetry.ReportUpdateClient(false, clientType, clientID)

	return consensusHeights, nil
}
