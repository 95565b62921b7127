// Package store implements the host chain commitment store: one IAVL tree per
// named substore, committed together under a simple merkle root over the
// substore roots. Store versions are block heights.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"

	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store/wrapper"

	"github.com/cometbft/cometbft/crypto/merkle"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/iavl"
	ics23 "github.com/cosmos/ics23/go"
)

const defaultCacheSize = 10000

// CommitID is the version and root hash of a commit.
type CommitID struct {
	Version int64
	Hash    []byte
}

// IsZero reports whether nothing has been committed yet.
func (cid CommitID) IsZero() bool {
	return cid.Version == 0 && len(cid.Hash) == 0
}

func (cid CommitID) String() string {
	return fmt.Sprintf("CommitID{%X:%d}", cid.Hash, cid.Version)
}

// CommitMultiStore is a set of IAVL substores that are committed atomically.
// It is not safe for concurrent use; the application serialises access.
type CommitMultiStore struct {
	logger log.Logger
	names  []string
	trees  map[string]*iavl.MutableTree
}

// NewCommitMultiStore mounts the named substores on db and loads their latest
// committed version.
func NewCommitMultiStore(db dbm.DB, logger log.Logger, names ...string) (*CommitMultiStore, error) {
	if len(names) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidStore, "at least one store must be mounted")
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	cms := &CommitMultiStore{
		logger: logger.With("module", "store"),
		names:  sorted,
		trees:  make(map[string]*iavl.MutableTree, len(sorted)),
	}

	var version int64 = -1
	for i, name := range sorted {
		if i > 0 && sorted[i-1] == name {
			return nil, errorsmod.Wrapf(ErrInvalidStore, "store %s mounted twice", name)
		}

		storeDB := dbm.NewPrefixDB(db, []byte("s/k:"+name+"/"))
		tree := iavl.NewMutableTree(wrapper.NewDBWrapper(storeDB), defaultCacheSize, false, logger)
		loaded, err := tree.Load()
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidStore, "failed to load store %s: %v", name, err)
		}

		if version >= 0 && loaded != version {
			return nil, errorsmod.Wrapf(ErrInvalidStore, "store %s is at version %d, expected %d", name, loaded, version)
		}
		version = loaded
		cms.trees[name] = tree
	}

	cms.logger.Debug("loaded commit multistore", "version", version, "stores", sorted)
	return cms, nil
}

// LastCommitID returns the latest committed version and its root.
func (cms *CommitMultiStore) LastCommitID() CommitID {
	version := cms.trees[cms.names[0]].Version()
	if version == 0 {
		return CommitID{}
	}

	hash, err := cms.RootHash(version)
	if err != nil {
		panic(err)
	}
	return CommitID{Version: version, Hash: hash}
}

// Commit persists the working state of every substore as a new version and
// returns the resulting root.
func (cms *CommitMultiStore) Commit() (CommitID, error) {
	var version int64
	for _, name := range cms.names {
		_, v, err := cms.trees[name].SaveVersion()
		if err != nil {
			return CommitID{}, errorsmod.Wrapf(ErrInvalidStore, "failed to commit store %s: %v", name, err)
		}
		version = v
	}

	hash, err := cms.RootHash(version)
	if err != nil {
		return CommitID{}, err
	}

	cms.logger.Debug("committed multistore", "version", version, "hash", fmt.Sprintf("%X", hash))
	return CommitID{Version: version, Hash: hash}, nil
}

// Rollback discards the uncommitted working state of every substore.
func (cms *CommitMultiStore) Rollback() {
	for _, name := range cms.names {
		cms.trees[name].Rollback()
	}
}

// RootHash returns the root committing to every substore at the given version.
func (cms *CommitMultiStore) RootHash(version int64) ([]byte, error) {
	leaves, err := cms.storeLeaves(version)
	if err != nil {
		return nil, err
	}
	return merkle.HashFromByteSlices(leaves), nil
}

// KVStore returns the working state of a substore.
func (cms *CommitMultiStore) KVStore(name string) *KVStore {
	tree, ok := cms.trees[name]
	if !ok {
		panic(fmt.Errorf("store %s is not mounted", name))
	}
	return &KVStore{tree: tree}
}

// KVStoreService returns a service opening the working state of a substore.
func (cms *CommitMultiStore) KVStoreService(name string) corestore.KVStoreService {
	return kvStoreService{store: cms.KVStore(name)}
}

// ProveKey returns the value stored under key in the named substore at the
// given committed version, together with the proofs from the key up to the
// multistore root, ordered leaf to root. A nil value comes with a proof of
// absence.
func (cms *CommitMultiStore) ProveKey(name string, key []byte, version int64) ([]byte, []*ics23.CommitmentProof, error) {
	tree, ok := cms.trees[name]
	if !ok {
		return nil, nil, errorsmod.Wrapf(ErrInvalidStore, "store %s is not mounted", name)
	}

	if len(key) == 0 {
		return nil, nil, errorsmod.Wrap(ErrInvalidStore, "key cannot be empty")
	}

	immutable, err := tree.GetImmutable(version)
	if err != nil {
		return nil, nil, errorsmod.Wrapf(ErrVersionNotFound, "store %s version %d: %v", name, version, err)
	}

	value, err := immutable.Get(key)
	if err != nil {
		return nil, nil, err
	}

	var storeProof *ics23.CommitmentProof
	if value != nil {
		storeProof, err = immutable.GetMembershipProof(key)
	} else {
		storeProof, err = immutable.GetNonMembershipProof(key)
	}
	if err != nil {
		return nil, nil, errorsmod.Wrapf(ErrInvalidStore, "failed to prove key %X in store %s: %v", key, name, err)
	}

	multistoreProof, err := cms.proveStore(name, immutable.Hash(), version)
	if err != nil {
		return nil, nil, err
	}

	return value, []*ics23.CommitmentProof{storeProof, multistoreProof}, nil
}

// proveStore returns the existence proof of a substore root in the multistore root.
func (cms *CommitMultiStore) proveStore(name string, storeRoot []byte, version int64) (*ics23.CommitmentProof, error) {
	leaves, err := cms.storeLeaves(version)
	if err != nil {
		return nil, err
	}

	_, proofs := merkle.ProofsFromByteSlices(leaves)
	index := sort.SearchStrings(cms.names, name)

	exist, err := convertExistenceProof(proofs[index], []byte(name), storeRoot)
	if err != nil {
		return nil, err
	}

	return &ics23.CommitmentProof{
		Proof: &ics23.CommitmentProof_Exist{Exist: exist},
	}, nil
}

// storeLeaves returns the merkle leaves of the substore roots at version, sorted by store name.
// Each leaf is the length-prefixed store name followed by the length-prefixed sha256 of its root.
func (cms *CommitMultiStore) storeLeaves(version int64) ([][]byte, error) {
	leaves := make([][]byte, 0, len(cms.names))
	for _, name := range cms.names {
		immutable, err := cms.trees[name].GetImmutable(version)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrVersionNotFound, "store %s version %d: %v", name, version, err)
		}

		rootHash := sha256.Sum256(immutable.Hash())
		leaves = append(leaves, kvPairBytes([]byte(name), rootHash[:]))
	}
	return leaves, nil
}

func kvPairBytes(key, value []byte) []byte {
	bz := make([]byte, 0, len(key)+len(value)+2*binary.MaxVarintLen64)
	bz = binary.AppendUvarint(bz, uint64(len(key)))
	bz = append(bz, key...)
	bz = binary.AppendUvarint(bz, uint64(len(value)))
	return append(bz, value...)
}

type kvStoreService struct {
	store *KVStore
}

func (s kvStoreService) OpenKVStore(context.Context) corestore.KVStore {
	return s.store
}
