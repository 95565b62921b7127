package eclipse

import (
	"encoding/binary"
	"fmt"

	"cosmossdk.io/core/header"
	corestore "cosmossdk.io/core/store"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

var (
	// KeyProcessedTime is appended to consensus state key to store the processed time
	KeyProcessedTime = []byte("/processedTime")
	// KeyProcessedHeight is appended to consensus state key to store the processed height
	KeyProcessedHeight = []byte("/processedHeight")
)

// getClientState retrieves the client state from the client prefixed store.
// If the client state does not exist in the store, it returns false.
func getClientState(clientStore corestore.KVStore) (*ClientState, bool) {
	bz := mustGet(clientStore, host.ClientStateKey())
	if len(bz) == 0 {
		return nil, false
	}

	var clientState ClientState
	mustUnmarshalAny(bz, &clientState)
	return &clientState, true
}

// setClientState stores the client state
func setClientState(clientStore corestore.KVStore, clientState *ClientState) {
	mustSet(clientStore, host.ClientStateKey(), clienttypes.MustPackAny(clientState))
}

// GetConsensusState retrieves the consensus state from the client prefixed store.
// If the ConsensusState does not exist in state for the provided height, it returns false.
func GetConsensusState(clientStore corestore.KVStore, height exported.Height) (*ConsensusState, bool) {
	bz := mustGet(clientStore, host.ConsensusStateKey(height))
	if len(bz) == 0 {
		return nil, false
	}

	var consensusState ConsensusState
	mustUnmarshalAny(bz, &consensusState)
	return &consensusState, true
}

// setConsensusState stores the consensus state at the given height.
func setConsensusState(clientStore corestore.KVStore, consensusState *ConsensusState, height exported.Height) {
	mustSet(clientStore, host.ConsensusStateKey(height), clienttypes.MustPackAny(consensusState))
}

// ProcessedTimeKey returns the key under which the processed time will be stored in the client store.
func ProcessedTimeKey(height exported.Height) []byte {
	return append(host.ConsensusStateKey(height), KeyProcessedTime...)
}

// GetProcessedTime gets the time (in nanoseconds) at which this chain received and processed an eclipse header.
// This is used to validate that a received packet has passed the time delay period.
func GetProcessedTime(clientStore corestore.KVStore, height exported.Height) (uint64, bool) {
	bz := mustGet(clientStore, ProcessedTimeKey(height))
	if len(bz) == 0 {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

// ProcessedHeightKey returns the key under which the processed height will be stored in the client store.
func ProcessedHeightKey(height exported.Height) []byte {
	return append(host.ConsensusStateKey(height), KeyProcessedHeight...)
}

// GetProcessedHeight gets the height at which this chain received and processed an eclipse header.
// This is used to validate that a received packet has passed the block delay period.
func GetProcessedHeight(clientStore corestore.KVStore, height exported.Height) (exported.Height, bool) {
	bz := mustGet(clientStore, ProcessedHeightKey(height))
	if len(bz) == 0 {
		return nil, false
	}

	var processedHeight clienttypes.Height
	if err := processedHeight.Unmarshal(bz); err != nil {
		panic(err)
	}
	return processedHeight, true
}

// setConsensusMetadata records the host time and height at which the consensus
// state for height was stored.
func setConsensusMetadata(headerInfo header.Info, clientStore corestore.KVStore, height exported.Height) {
	timeBz := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBz, uint64(headerInfo.Time.UnixNano()))
	mustSet(clientStore, ProcessedTimeKey(height), timeBz)

	processedHeight := clienttypes.NewHeight(0, uint64(headerInfo.Height))
	mustSet(clientStore, ProcessedHeightKey(height), processedHeight.Marshal())
}

func mustUnmarshalAny(bz []byte, msg exported.Marshaler) {
	typeURL, value, err := wire.UnmarshalAny(bz)
	if err != nil {
		panic(fmt.Errorf("failed to decode stored Any: %w", err))
	}
	if typeURL != msg.TypeURL() {
		panic(fmt.Errorf("invalid type URL %s stored in client store, expected %s", typeURL, msg.TypeURL()))
	}
	if err := msg.Unmarshal(value); err != nil {
		panic(err)
	}
}

func mustGet(store corestore.KVStore, key []byte) []byte {
	bz, err := store.Get(key)
	if err != nil {
		panic(err)
	}
	return bz
}

func mustSet(store corestore.KVStore, key, value []byte) {
	if err := store.Set(key, value); err != nil {
		panic(err)
	}
}
