package types

import (
	"context"

	corestore "cosmossdk.io/core/store"
	storetypes "cosmossdk.io/store/types"

	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

var _ exported.ClientStoreProvider = (*storeProvider)(nil)

// storeProvider implements the exported.ClientStoreProvider interface and encapsulates the IBC core store service.
type storeProvider struct {
	storeService corestore.KVStoreService
}

// NewStoreProvider creates and returns a new ClientStoreProvider.
func NewStoreProvider(storeService corestore.KVStoreService) exported.ClientStoreProvider {
	return storeProvider{
		storeService: storeService,
	}
}

// ClientStore returns isolated prefix store for each client so they can read/write in separate namespaces.
func (s storeProvider) ClientStore(ctx context.Context, clientID string) corestore.KVStore {
	clientPrefix := host.PrefixedClientStoreKey([]byte(clientID + "/"))
	return NewPrefixStore(s.storeService.OpenKVStore(ctx), clientPrefix)
}

var _ corestore.KVStore = (*PrefixStore)(nil)

// PrefixStore is a view of a parent store restricted to the keys under a prefix.
// Keys passed to and returned from a PrefixStore do not include the prefix.
type PrefixStore struct {
	parent corestore.KVStore
	prefix []byte
}

// NewPrefixStore returns the view of parent under prefix.
func NewPrefixStore(parent corestore.KVStore, prefix []byte) PrefixStore {
	return PrefixStore{
		parent: parent,
		prefix: prefix,
	}
}

func (s PrefixStore) key(key []byte) []byte {
	res := make([]byte, len(s.prefix)+len(key))
	copy(res, s.prefix)
	copy(res[len(s.prefix):], key)
	return res
}

// Get implements corestore.KVStore.
func (s PrefixStore) Get(key []byte) ([]byte, error) {
	return s.parent.Get(s.key(key))
}

// Has implements corestore.KVStore.
func (s PrefixStore) Has(key []byte) (bool, error) {
	return s.parent.Has(s.key(key))
}

// Set implements corestore.KVStore.
func (s PrefixStore) Set(key, value []byte) error {
	return s.parent.Set(s.key(key), value)
}

// Delete implements corestore.KVStore.
func (s PrefixStore) Delete(key []byte) error {
	return s.parent.Delete(s.key(key))
}

// Iterator implements corestore.KVStore.
func (s PrefixStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	newStart, newEnd := s.domain(start, end)
	iter, err := s.parent.Iterator(newStart, newEnd)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: s.prefix, start: start, end: end, parent: iter}, nil
}

// ReverseIterator implements corestore.KVStore.
func (s PrefixStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	newStart, newEnd := s.domain(start, end)
	iter, err := s.parent.ReverseIterator(newStart, newEnd)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: s.prefix, start: start, end: end, parent: iter}, nil
}

func (s PrefixStore) domain(start, end []byte) ([]byte, []byte) {
	newStart := s.key(start)
	var newEnd []byte
	if end == nil {
		newEnd = storetypes.PrefixEndBytes(s.prefix)
	} else {
		newEnd = s.key(end)
	}
	return newStart, newEnd
}

var _ corestore.Iterator = (*prefixIterator)(nil)

type prefixIterator struct {
	prefix     []byte
	start, end []byte
	parent     corestore.Iterator
}

func (pi *prefixIterator) Domain() ([]byte, []byte) {
	return pi.start, pi.end
}

func (pi *prefixIterator) Valid() bool {
	return pi.parent.Valid()
}

func (pi *prefixIterator) Next() {
	pi.parent.Next()
}

func (pi *prefixIterator) Key() []byte {
	return pi.parent.Key()[len(pi.prefix):]
}

func (pi *prefixIterator) Value() []byte {
	return pi.parent.Value()
}

func (pi *prefixIterator) Error() error {
	return pi.parent.Error()
}

func (pi *prefixIterator) Close() error {
	return pi.parent.Close()
}
