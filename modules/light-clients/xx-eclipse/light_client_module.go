package eclipse

import (
	"context"

	"cosmossdk.io/core/header"
	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the core IBC api.LightClientModule interface.
type LightClientModule struct {
	storeProvider exported.ClientStoreProvider
	headerService header.Service
}

// NewLightClientModule creates and returns a new xx-eclipse LightClientModule.
// The header service provides the host block time and height recorded alongside
// every consensus state.
func NewLightClientModule(storeProvider exported.ClientStoreProvider, headerService header.Service) LightClientModule {
	return LightClientModule{
		storeProvider: storeProvider,
		headerService: headerService,
	}
}

// Initialize unmarshals the provided client and consensus states and performs basic validation. It calls into the
// clientState.initialize method.
func (l LightClientModule) Initialize(ctx context.Context, clientID string, clientStateBz, consensusStateBz []byte) error {
	var clientState ClientState
	if err := clientState.Unmarshal(clientStateBz); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrInvalidInitialState, "failed to unmarshal client state bytes into client state: %v", err)
	}

	if err := clientState.Validate(); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrInvalidInitialState, "client %s: %v", clientID, err)
	}

	var consensusState ConsensusState
	if err := consensusState.Unmarshal(consensusStateBz); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrInvalidInitialState, "failed to unmarshal consensus state bytes into consensus state: %v", err)
	}

	if err := consensusState.ValidateBasic(); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrInvalidInitialState, "client %s: %v", clientID, err)
	}

	clientStore := l.storeProvider.ClientStore(ctx, clientID)

	return clientState.initialize(l.headerService.GetHeaderInfo(ctx), clientStore, &consensusState)
}

// VerifyClientMessage obtains the client state associated with the client identifier and calls into the clientState.VerifyClientMessage method.
func (l LightClientModule) VerifyClientMessage(ctx context.Context, clientID string, clientMsg exported.ClientMessage) error {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	return clientState.VerifyClientMessage(clientMsg)
}

// CheckForMisbehaviour obtains the client state associated with the client identifier and calls into the clientState.CheckForMisbehaviour method.
func (l LightClientModule) CheckForMisbehaviour(ctx context.Context, clientID string, clientMsg exported.ClientMessage) bool {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		panic(errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID))
	}

	return clientState.CheckForMisbehaviour(clientStore, clientMsg)
}

// UpdateStateOnMisbehaviour obtains the client state associated with the client identifier and calls into the clientState.UpdateStateOnMisbehaviour method.
func (l LightClientModule) UpdateStateOnMisbehaviour(ctx context.Context, clientID string, clientMsg exported.ClientMessage) {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		panic(errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID))
	}

	clientState.UpdateStateOnMisbehaviour(clientStore, clientMsg)
}

// UpdateState obtains the client state associated with the client identifier and calls into the clientState.UpdateState method.
func (l LightClientModule) UpdateState(ctx context.Context, clientID string, clientMsg exported.ClientMessage) ([]exported.Height, error) {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return nil, errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	return clientState.UpdateState(l.headerService.GetHeaderInfo(ctx), clientStore, clientMsg)
}

// VerifyMembership obtains the client state associated with the client identifier and calls into the clientState.verifyMembership method.
func (l LightClientModule) VerifyMembership(
	ctx context.Context,
	clientID string,
	height exported.Height,
	proof []byte,
	path exported.Path,
	value []byte,
) error {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	if err := clientState.verifyMembership(clientStore, height, proof, path, value); err != nil {
		return errorsmod.Wrapf(err, "client %s at height %s", clientID, height)
	}
	return nil
}

// VerifyNonMembership obtains the client state associated with the client identifier and calls into the clientState.verifyNonMembership method.
func (l LightClientModule) VerifyNonMembership(
	ctx context.Context,
	clientID string,
	height exported.Height,
	proof []byte,
	path exported.Path,
) error {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	if err := clientState.verifyNonMembership(clientStore, height, proof, path); err != nil {
		return errorsmod.Wrapf(err, "client %s at height %s", clientID, height)
	}
	return nil
}

// Status returns Frozen once misbehaviour has been detected for the client and
// Active otherwise. Unknown is returned if the client does not exist.
func (l LightClientModule) Status(ctx context.Context, clientID string) exported.Status {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return exported.Unknown
	}

	return clientState.status()
}

// LatestHeight returns the latest height for the client state for the given client identifier.
// If no client is present for the provided client identifier a zero value height is returned.
func (l LightClientModule) LatestHeight(ctx context.Context, clientID string) exported.Height {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return clienttypes.ZeroHeight()
	}

	return clientState.LatestHeight()
}

// TimestampAtHeight obtains the client state associated with the client identifier and calls into the clientState.getTimestampAtHeight method.
func (l LightClientModule) TimestampAtHeight(
	ctx context.Context,
	clientID string,
	height exported.Height,
) (uint64, error) {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return 0, errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	return clientState.getTimestampAtHeight(clientStore, height)
}
