package keeper

import (
	"context"
	"encoding/binary"
	"errors"

	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Keeper owns the connection ends and the per-client connection lists of the
// IBC store.
type Keeper struct {
	storeService corestore.KVStoreService
	clientKeeper types.ClientKeeper
	logger       log.Logger
}

func NewKeeper(storeService corestore.KVStoreService, ck types.ClientKeeper, logger log.Logger) *Keeper {
	return &Keeper{
		storeService: storeService,
		clientKeeper: ck,
		logger:       logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName),
	}
}

func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetCommitmentPrefix is the prefix counterparties prove this chain's IBC
// state under.
func (*Keeper) GetCommitmentPrefix() exported.Prefix {
	return commitmenttypes.NewMerklePrefix([]byte(exported.StoreKey))
}

// GenerateConnectionIdentifier hands out "connection-{seq}" and bumps the sequence.
func (k *Keeper) GenerateConnectionIdentifier(ctx context.Context) string {
	seq := k.GetNextConnectionSequence(ctx)
	k.SetNextConnectionSequence(ctx, seq+1)
	return types.FormatConnectionIdentifier(seq)
}

// GetConnection returns the connection end stored under connectionID.
func (k *Keeper) GetConnection(ctx context.Context, connectionID string) (types.ConnectionEnd, bool) {
	bz := k.mustGet(ctx, host.ConnectionKey(connectionID))
	if len(bz) == 0 {
		return types.ConnectionEnd{}, false
	}

	var connection types.ConnectionEnd
	if err := connection.Unmarshal(bz); err != nil {
		panic(err)
	}
	return connection, true
}

func (k *Keeper) HasConnection(ctx context.Context, connectionID string) bool {
	has, err := k.storeService.OpenKVStore(ctx).Has(host.ConnectionKey(connectionID))
	return err == nil && has
}

func (k *Keeper) SetConnection(ctx context.Context, connectionID string, connection types.ConnectionEnd) {
	k.mustSet(ctx, host.ConnectionKey(connectionID), connection.Marshal())
}

// GetClientConnectionPaths returns the identifiers of every connection opened
// on clientID, in creation order.
func (k *Keeper) GetClientConnectionPaths(ctx context.Context, clientID string) ([]string, bool) {
	bz := k.mustGet(ctx, host.ClientConnectionsKey(clientID))
	if len(bz) == 0 {
		return nil, false
	}

	var paths []string
	err := wire.Range(bz, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		if err := wire.ExpectType(f, protowire.BytesType); err != nil {
			return err
		}
		paths = append(paths, string(f.Bytes))
		return nil
	})
	if err != nil {
		panic(err)
	}
	return paths, true
}

// SetClientConnectionPaths stores paths as a ClientPaths message: field 1
// repeated once per connection identifier.
func (k *Keeper) SetClientConnectionPaths(ctx context.Context, clientID string, paths []string) {
	k.mustSet(ctx, host.ClientConnectionsKey(clientID), wire.AppendRepeatedString(nil, 1, paths))
}

// GetNextConnectionSequence panics before genesis has set the sequence.
func (k *Keeper) GetNextConnectionSequence(ctx context.Context) uint64 {
	bz := k.mustGet(ctx, []byte(types.KeyNextConnectionSequence))
	if len(bz) != 8 {
		panic(errors.New("next connection sequence is not set"))
	}
	return binary.BigEndian.Uint64(bz)
}

func (k *Keeper) SetNextConnectionSequence(ctx context.Context, sequence uint64) {
	k.mustSet(ctx, []byte(types.KeyNextConnectionSequence), binary.BigEndian.AppendUint64(nil, sequence))
}

// IterateConnections calls cb on every stored connection in identifier byte
// order until cb returns true.
func (k *Keeper) IterateConnections(ctx context.Context, cb func(types.IdentifiedConnection) bool) {
	store := k.storeService.OpenKVStore(ctx)
	prefix := []byte(host.KeyConnectionPrefix + "/")

	iterator, err := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		panic(err)
	}
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var connection types.ConnectionEnd
		if err := connection.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}

		connectionID := string(iterator.Key()[len(prefix):])
		if cb(types.NewIdentifiedConnection(connectionID, connection)) {
			break
		}
	}
}

func (k *Keeper) GetAllConnections(ctx context.Context) (connections []types.IdentifiedConnection) {
	k.IterateConnections(ctx, func(connection types.IdentifiedConnection) bool {
		connections = append(connections, connection)
		return false
	})
	return connections
}

// addConnectionToClient appends connectionID to the connection list of an
// existing client.
func (k *Keeper) addConnectionToClient(ctx context.Context, clientID, connectionID string) error {
	_, found := k.clientKeeper.GetClientState(ctx, clientID)
	if !found {
		return errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	conns, _ := k.GetClientConnectionPaths(ctx, clientID)
	k.SetClientConnectionPaths(ctx, clientID, append(conns, connectionID))
	return nil
}

// findAnsweredConnection returns the identifier of the connection of clientID
// which already answered the given counterparty connection, if any.
func (k *Keeper) findAnsweredConnection(ctx context.Context, clientID string, counterparty types.Counterparty) (string, types.ConnectionEnd, bool) {
	connectionIDs, _ := k.GetClientConnectionPaths(ctx, clientID)
	for _, connectionID := range connectionIDs {
		connection, found := k.GetConnection(ctx, connectionID)
		if !found {
			continue
		}

		if connection.Counterparty.ClientId == counterparty.ClientId && connection.Counterparty.ConnectionId == counterparty.ConnectionId {
			return connectionID, connection, true
		}
	}

	return "", types.ConnectionEnd{}, false
}

// Store errors only come from a broken backend and panic.

func (k *Keeper) mustGet(ctx context.Context, key []byte) []byte {
	bz, err := k.storeService.OpenKVStore(ctx).Get(key)
	if err != nil {
		panic(err)
	}
	return bz
}

func (k *Keeper) mustSet(ctx context.Context, key, value []byte) {
	if err := k.storeService.OpenKVStore(ctx).Set(key, value); err != nil {
		panic(err)
	}
}
