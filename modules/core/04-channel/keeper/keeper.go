package keeper

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Keeper defines the IBC channel keeper
type Keeper struct {
	storeService     corestore.KVStoreService
	clientKeeper     types.ClientKeeper
	connectionKeeper types.ConnectionKeeper
	portKeeper       types.PortKeeper
	logger           log.Logger
}

// NewKeeper creates a new IBC channel Keeper instance
func NewKeeper(
	storeService corestore.KVStoreService,
	clientKeeper types.ClientKeeper,
	connectionKeeper types.ConnectionKeeper,
	portKeeper types.PortKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		storeService:     storeService,
		clientKeeper:     clientKeeper,
		connectionKeeper: connectionKeeper,
		portKeeper:       portKeeper,
		logger:           logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// nextChannelIdentifier returns the identifier the next created channel will
// receive without consuming the sequence.
func (k *Keeper) nextChannelIdentifier(ctx context.Context) string {
	return types.FormatChannelIdentifier(k.GetNextChannelSequence(ctx))
}

// HasChannel true if the channel with the given identifiers exists in state.
func (k *Keeper) HasChannel(ctx context.Context, portID, channelID string) bool {
	store := k.storeService.OpenKVStore(ctx)
	has, err := store.Has(host.ChannelKey(portID, channelID))
	if err != nil {
		panic(err)
	}
	return has
}

// GetChannel returns a channel with a particular identifier binded to a specific port
func (k *Keeper) GetChannel(ctx context.Context, portID, channelID string) (types.Channel, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(host.ChannelKey(portID, channelID))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return types.Channel{}, false
	}

	var channel types.Channel
	if err := channel.Unmarshal(bz); err != nil {
		panic(err)
	}
	return channel, true
}

// SetChannel sets a channel to the store
func (k *Keeper) SetChannel(ctx context.Context, portID, channelID string, channel types.Channel) {
	store := k.storeService.OpenKVStore(ctx)
	if err := store.Set(host.ChannelKey(portID, channelID), channel.Marshal()); err != nil {
		panic(err)
	}
}

// GetAppVersion gets the version for the specified channel.
func (k *Keeper) GetAppVersion(ctx context.Context, portID, channelID string) (string, bool) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		return "", false
	}

	return channel.Version, true
}

// GetNextChannelSequence gets the next channel sequence from the store.
func (k *Keeper) GetNextChannelSequence(ctx context.Context) uint64 {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get([]byte(types.KeyNextChannelSequence))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		panic(errors.New("next channel sequence is nil"))
	}

	return binary.BigEndian.Uint64(bz)
}

// SetNextChannelSequence sets the next channel sequence to the store.
func (k *Keeper) SetNextChannelSequence(ctx context.Context, sequence uint64) {
	k.setUint64(ctx, []byte(types.KeyNextChannelSequence), sequence)
}

// GetNextSequenceSend gets a channel's next send sequence from the store
func (k *Keeper) GetNextSequenceSend(ctx context.Context, portID, channelID string) (uint64, bool) {
	return k.getUint64(ctx, host.NextSequenceSendKey(portID, channelID))
}

// SetNextSequenceSend sets a channel's next send sequence to the store
func (k *Keeper) SetNextSequenceSend(ctx context.Context, portID, channelID string, sequence uint64) {
	k.setUint64(ctx, host.NextSequenceSendKey(portID, channelID), sequence)
}

// GetNextSequenceRecv gets a channel's next receive sequence from the store
func (k *Keeper) GetNextSequenceRecv(ctx context.Context, portID, channelID string) (uint64, bool) {
	return k.getUint64(ctx, host.NextSequenceRecvKey(portID, channelID))
}

// SetNextSequenceRecv sets a channel's next receive sequence to the store
func (k *Keeper) SetNextSequenceRecv(ctx context.Context, portID, channelID string, sequence uint64) {
	k.setUint64(ctx, host.NextSequenceRecvKey(portID, channelID), sequence)
}

// GetNextSequenceAck gets a channel's next ack sequence from the store
func (k *Keeper) GetNextSequenceAck(ctx context.Context, portID, channelID string) (uint64, bool) {
	return k.getUint64(ctx, host.NextSequenceAckKey(portID, channelID))
}

// SetNextSequenceAck sets a channel's next ack sequence to the store
func (k *Keeper) SetNextSequenceAck(ctx context.Context, portID, channelID string, sequence uint64) {
	k.setUint64(ctx, host.NextSequenceAckKey(portID, channelID), sequence)
}

func (k *Keeper) getUint64(ctx context.Context, key []byte) (uint64, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(key)
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return 0, false
	}

	return binary.BigEndian.Uint64(bz), true
}

func (k *Keeper) setUint64(ctx context.Context, key []byte, value uint64) {
	store := k.storeService.OpenKVStore(ctx)
	if err := store.Set(key, binary.BigEndian.AppendUint64(nil, value)); err != nil {
		panic(err)
	}
}

// IteratePortChannels provides an iterator over the channel ends bound to the
// given port. If the cb returns true, the iterator will close and stop.
func (k *Keeper) IteratePortChannels(ctx context.Context, portID string, cb func(types.IdentifiedChannel) bool) {
	k.iterateChannels(ctx, host.PortChannelsPrefixKey(portID), cb)
}

// IterateChannels provides an iterator over all Channel objects. For each
// Channel, cb will be called. If the cb returns true, the iterator will close
// and stop.
func (k *Keeper) IterateChannels(ctx context.Context, cb func(types.IdentifiedChannel) bool) {
	k.iterateChannels(ctx, []byte(host.KeyChannelEndPrefix+"/"), cb)
}

// GetAllChannels returns all stored Channel objects.
func (k *Keeper) GetAllChannels(ctx context.Context) (channels []types.IdentifiedChannel) {
	k.IterateChannels(ctx, func(channel types.IdentifiedChannel) bool {
		channels = append(channels, channel)
		return false
	})
	return channels
}

func (k *Keeper) iterateChannels(ctx context.Context, prefix []byte, cb func(types.IdentifiedChannel) bool) {
	store := k.storeService.OpenKVStore(ctx)
	iterator, err := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		panic(err)
	}
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		portID, channelID, err := parseChannelKey(string(iterator.Key()))
		if err != nil {
			panic(err)
		}

		var channel types.Channel
		if err := channel.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}

		if cb(types.NewIdentifiedChannel(portID, channelID, channel)) {
			break
		}
	}
}

// parseChannelKey returns the port and channel identifiers of a channel end key.
func parseChannelKey(key string) (string, string, error) {
	path, err := host.ParsePath(key)
	if err != nil {
		return "", "", err
	}

	channelPath, ok := path.(host.ChannelEndPath)
	if !ok {
		return "", "", fmt.Errorf("key %s is not a channel end key", key)
	}

	return channelPath.PortID, channelPath.ChannelID, nil
}
