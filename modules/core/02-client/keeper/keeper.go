package keeper

import (
	"context"
	"encoding/binary"
	"errors"
	"slices"
	"strings"

	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Keeper represents a type that grants read and write permissions to any client
// state information
type Keeper struct {
	storeService  corestore.KVStoreService
	storeProvider exported.ClientStoreProvider
	registry      *types.InterfaceRegistry
	router        *types.Router
	logger        log.Logger
}

// NewKeeper creates a new NewKeeper instance
func NewKeeper(storeService corestore.KVStoreService, registry *types.InterfaceRegistry, logger log.Logger) *Keeper {
	return &Keeper{
		storeService:  storeService,
		storeProvider: types.NewStoreProvider(storeService),
		registry:      registry,
		router:        types.NewRouter(),
		logger:        logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// AddRoute adds a new route to the underlying router.
func (k *Keeper) AddRoute(clientType string, module exported.LightClientModule) {
	k.router.AddRoute(clientType, module)
}

// GetStoreProvider returns the light client store provider.
func (k *Keeper) GetStoreProvider() exported.ClientStoreProvider {
	return k.storeProvider
}

// Route returns the light client module for the given client identifier.
func (k *Keeper) Route(clientID string) (exported.LightClientModule, error) {
	clientModule, found := k.router.GetRoute(clientID)
	if !found {
		return nil, errorsmod.Wrap(types.ErrRouteNotFound, clientID)
	}

	return clientModule, nil
}

// GenerateClientIdentifier returns the next client identifier without consuming
// the client sequence. The sequence is consumed once the client is stored.
func (k *Keeper) GenerateClientIdentifier(ctx context.Context, clientType string) string {
	return types.FormatClientIdentifier(clientType, k.GetNextClientSequence(ctx))
}

// GetNextClientSequence gets the next client sequence from the store.
func (k *Keeper) GetNextClientSequence(ctx context.Context) uint64 {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get([]byte(types.KeyNextClientSequence))
	if err != nil {
		panic(err)
	}

	if len(bz) == 0 {
		panic(errors.New("next client sequence is nil"))
	}

	return binary.BigEndian.Uint64(bz)
}

// SetNextClientSequence sets the next client sequence to the store.
func (k *Keeper) SetNextClientSequence(ctx context.Context, sequence uint64) {
	store := k.storeService.OpenKVStore(ctx)
	if err := store.Set([]byte(types.KeyNextClientSequence), binary.BigEndian.AppendUint64(nil, sequence)); err != nil {
		panic(err)
	}
}

// GetClientState gets a particular client from the store
func (k *Keeper) GetClientState(ctx context.Context, clientID string) (exported.ClientState, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(host.FullClientStateKey(clientID))
	if err != nil {
		panic(err)
	}

	if len(bz) == 0 {
		return nil, false
	}

	clientState, err := k.registry.UnpackClientState(bz)
	if err != nil {
		panic(err)
	}
	return clientState, true
}

// SetClientState sets a particular Client to the store
func (k *Keeper) SetClientState(ctx context.Context, clientID string, clientState exported.ClientState) {
	store := k.storeService.OpenKVStore(ctx)
	if err := store.Set(host.FullClientStateKey(clientID), types.MustPackAny(clientState)); err != nil {
		panic(err)
	}
}

// GetClientConsensusState gets the stored consensus state from a client at a given height.
func (k *Keeper) GetClientConsensusState(ctx context.Context, clientID string, height exported.Height) (exported.ConsensusState, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(host.FullConsensusStateKey(clientID, height))
	if err != nil {
		panic(err)
	}

	if len(bz) == 0 {
		return nil, false
	}

	consensusState, err := k.registry.UnpackConsensusState(bz)
	if err != nil {
		panic(err)
	}
	return consensusState, true
}

// GetConsensusStateHeights returns the heights of every consensus state stored
// for the client, in ascending order.
func (k *Keeper) GetConsensusStateHeights(ctx context.Context, clientID string) []types.Height {
	clientStore := k.storeProvider.ClientStore(ctx, clientID)
	prefix := host.ConsensusStatePrefixKey()

	iterator, err := clientStore.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		panic(err)
	}
	defer iterator.Close()

	var heights []types.Height
	for ; iterator.Valid(); iterator.Next() {
		suffix := strings.TrimPrefix(string(iterator.Key()), string(prefix))
		// consensus state metadata is stored under "consensusStates/{height}/{key}"
		if strings.Contains(suffix, "/") {
			continue
		}

		height, err := types.ParseHeight(suffix)
		if err != nil {
			panic(err)
		}
		heights = append(heights, height)
	}

	// keys sort lexicographically, heights numerically
	slices.SortFunc(heights, func(a, b types.Height) int {
		return int(a.Compare(b))
	})
	return heights
}

// IterateClientStates provides an iterator over all stored light client states.
// For each client state the callback is called. If the callback returns true
// the iteration stops.
func (k *Keeper) IterateClientStates(ctx context.Context, cb func(clientID string, clientState exported.ClientState) bool) {
	store := k.storeService.OpenKVStore(ctx)
	prefix := host.PrefixedClientStoreKey(nil)

	iterator, err := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		panic(err)
	}
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		path, err := host.ParsePath(string(iterator.Key()))
		if err != nil {
			continue
		}

		clientStatePath, ok := path.(host.ClientStatePath)
		if !ok {
			continue
		}

		clientState, err := k.registry.UnpackClientState(iterator.Value())
		if err != nil {
			panic(err)
		}

		if cb(clientStatePath.ClientID, clientState) {
			break
		}
	}
}

// GetClientStatus returns the status for a client state given a client identifier. If no light client module
// is registered for the client type, Unknown is returned, otherwise the client state status is returned.
func (k *Keeper) GetClientStatus(ctx context.Context, clientID string) exported.Status {
	clientModule, err := k.Route(clientID)
	if err != nil {
		return exported.Unknown
	}

	return clientModule.Status(ctx, clientID)
}

// GetClientLatestHeight returns the latest height of a client state for a given client identifier. If no light client
// module is registered for the client type, a zero value height is returned.
func (k *Keeper) GetClientLatestHeight(ctx context.Context, clientID string) types.Height {
	clientModule, err := k.Route(clientID)
	if err != nil {
		return types.ZeroHeight()
	}

	var latestHeight types.Height
	latestHeight, ok := clientModule.LatestHeight(ctx, clientID).(types.Height)
	if !ok {
		panic(errorsmod.Wrapf(ibcerrors.ErrInvalidHeight, "cannot convert %T to %T", latestHeight, types.Height{}))
	}
	return latestHeight
}

// GetClientTimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (k *Keeper) GetClientTimestampAtHeight(ctx context.Context, clientID string, height exported.Height) (uint64, error) {
	clientModule, err := k.Route(clientID)
	if err != nil {
		return 0, err
	}

	return clientModule.TimestampAtHeight(ctx, clientID, height)
}
