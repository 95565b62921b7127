package store

import (
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/iavl"
)

var _ corestore.KVStore = (*KVStore)(nil)

// KVStore exposes the uncommitted working state of one IAVL substore.
type KVStore struct {
	tree *iavl.MutableTree
}

// Get returns nil iff key doesn't exist. Errors on nil key.
func (s *KVStore) Get(key []byte) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return s.tree.Get(key)
}

// Has checks if a key exists. Errors on nil key.
func (s *KVStore) Has(key []byte) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	return s.tree.Has(key)
}

// Set sets the key. Errors on nil key or value.
func (s *KVStore) Set(key, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if value == nil {
		return errorsmod.Wrapf(ErrInvalidStore, "value for key %X cannot be nil", key)
	}
	_, err := s.tree.Set(key, value)
	return err
}

// Delete deletes the key. Errors on nil key.
func (s *KVStore) Delete(key []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, _, err := s.tree.Remove(key)
	return err
}

// Iterator iterates over a domain of keys in ascending order. End is exclusive.
func (s *KVStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	return s.tree.Iterator(start, end, true)
}

// ReverseIterator iterates over a domain of keys in descending order. End is exclusive.
func (s *KVStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return s.tree.Iterator(start, end, false)
}

func validateKey(key []byte) error {
	if len(key) == 0 {
		return errorsmod.Wrap(ErrInvalidStore, "key cannot be empty")
	}
	return nil
}
