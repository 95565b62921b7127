package types

import (
	"bytes"
	"fmt"
	"net/url"

	errorsmod "cosmossdk.io/errors"

	ics23 "github.com/cosmos/ics23/go"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// var representing the proofspecs for the host commitment store: an IAVL substore
// committed into a simple merkle tree of substore roots.
var sdkSpecs = []*ics23.ProofSpec{ics23.IavlSpec, ics23.TendermintSpec}

// ICS 023 Merkle Types Implementation
//
// This file defines Merkle commitment types that implements ICS 023.

// Merkle proof implementation of the Proof interface
// Applied on SDK-based IBC implementation
var _ exported.Root = (*MerkleRoot)(nil)

// GetSDKSpecs is a getter function for the proofspecs of the host commitment store
func GetSDKSpecs() []*ics23.ProofSpec {
	return sdkSpecs
}

// MerkleRoot defines a merkle root hash.
type MerkleRoot struct {
	Hash []byte `json:"hash,omitempty"`
}

// NewMerkleRoot constructs a new MerkleRoot
func NewMerkleRoot(hash []byte) MerkleRoot {
	return MerkleRoot{
		Hash: hash,
	}
}

// GetHash implements RootI interface
func (mr MerkleRoot) GetHash() []byte {
	return mr.Hash
}

// Empty returns true if the root is empty
func (mr MerkleRoot) Empty() bool {
	return len(mr.GetHash()) == 0
}

var _ exported.Prefix = (*MerklePrefix)(nil)

// MerklePrefix is merkle path prefixed to the key.
// The constructed key from the Path and the key will be append(Path.KeyPath,
// append(Path.KeyPrefix, key...))
type MerklePrefix struct {
	KeyPrefix []byte `json:"key_prefix,omitempty"`
}

// NewMerklePrefix constructs new MerklePrefix instance
func NewMerklePrefix(keyPrefix []byte) MerklePrefix {
	return MerklePrefix{
		KeyPrefix: keyPrefix,
	}
}

// Bytes returns the key prefix bytes
func (mp MerklePrefix) Bytes() []byte {
	return mp.KeyPrefix
}

// Empty returns true if the prefix is empty
func (mp MerklePrefix) Empty() bool {
	return len(mp.Bytes()) == 0
}

var _ exported.Path = (*MerklePath)(nil)

// MerklePath is the path used to verify commitment proofs, which can be an
// arbitrary structured object (defined by a commitment type).
// MerklePath is represented from root-to-leaf
type MerklePath struct {
	KeyPath [][]byte `json:"key_path,omitempty"`
}

// NewMerklePath creates a new MerklePath instance
// The keys must be passed in from root-to-leaf order
func NewMerklePath(keyPath ...[]byte) MerklePath {
	return MerklePath{
		KeyPath: keyPath,
	}
}

// GetKey will return a byte representation of the key
func (mp MerklePath) GetKey(i uint64) ([]byte, error) {
	if i >= uint64(len(mp.KeyPath)) {
		return nil, fmt.Errorf("index out of range. %d (index) >= %d (len)", i, len(mp.KeyPath))
	}
	return mp.KeyPath[i], nil
}

// Empty returns true if the path is empty
func (mp MerklePath) Empty() bool {
	return len(mp.KeyPath) == 0
}

// String implements fmt.Stringer. Keys are url escaped so that binary keys stay readable.
func (mp MerklePath) String() string {
	var b bytes.Buffer
	for _, key := range mp.KeyPath {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(string(key)))
	}
	return b.String()
}

// ApplyPrefix constructs a new commitment path from the arguments. It prepends the prefix key
// with the given path.
func ApplyPrefix(prefix exported.Prefix, path MerklePath) (MerklePath, error) {
	if prefix == nil || prefix.Empty() {
		return MerklePath{}, errorsmod.Wrap(ErrInvalidPrefix, "prefix can't be empty")
	}

	return NewMerklePath(append([][]byte{prefix.Bytes()}, path.KeyPath...)...), nil
}

var _ exported.Proof = (*MerkleProof)(nil)

// MerkleProof is a wrapper type over a chain of CommitmentProofs.
// It demonstrates membership or non-membership for an element or set of elements,
// verifiable in conjunction with a known commitment root. Proofs should be
// succinct.
// MerkleProofs are ordered from leaf-to-root
type MerkleProof struct {
	Proofs []*ics23.CommitmentProof `json:"proofs,omitempty"`
}

// VerifyMembership verifies the membership of a merkle proof against the given root, path, and value.
// Note that the path is expected as []string{<store key of module>, <key corresponding to requested value>}.
// The leaf is recomputed from the claimed value, so a proof of a different value fails on the root comparison.
func (proof MerkleProof) VerifyMembership(specs []*ics23.ProofSpec, root exported.Root, path exported.Path, value []byte) error {
	mpath, err := validateVerificationArgs(proof, specs, root, path)
	if err != nil {
		return err
	}

	if len(value) == 0 {
		return errorsmod.Wrap(ErrMalformedProof, "empty value in membership proof")
	}

	// Since every proof in chain is a membership proof we can use verifyChainedMembershipProof
	// VerifyMembership specific argument validation
	return verifyChainedMembershipProof(root.GetHash(), specs, proof.Proofs, mpath, value, 0)
}

// VerifyNonMembership verifies the absence of a merkle proof against the given root and path.
// VerifyNonMembership verifies a chained proof where the absence of a given path is proven
// at the lowest subtree and then each subtree's inclusion is proved up to the final root.
func (proof MerkleProof) VerifyNonMembership(specs []*ics23.ProofSpec, root exported.Root, path exported.Path) error {
	mpath, err := validateVerificationArgs(proof, specs, root, path)
	if err != nil {
		return err
	}

	nonexist := proof.Proofs[0].GetNonexist()
	if nonexist == nil {
		return errorsmod.Wrapf(ErrMalformedProof, "expected proof type: %T, got: %T", &ics23.CommitmentProof_Nonexist{}, proof.Proofs[0].GetProof())
	}

	// VerifyNonMembership will verify the absence of key in lowest subtree, and then chain inclusion proofs
	// of all subroots up to final root
	key, err := mpath.GetKey(uint64(len(mpath.KeyPath) - 1))
	if err != nil {
		return errorsmod.Wrapf(ErrInvalidMerklePath, "key at index %d: %v", len(mpath.KeyPath)-1, err)
	}

	if !bytes.Equal(nonexist.Key, key) {
		return errorsmod.Wrapf(ErrKeyMismatch, "non-existence proof for key %X, requested key %X", nonexist.Key, key)
	}

	subroot, err := proof.Proofs[0].Calculate()
	if err != nil {
		return errorsmod.Wrapf(ErrMalformedProof, "could not calculate root for proof index 0, merkle tree is likely empty. %v", err)
	}

	if err := nonexist.Verify(specs[0], subroot, key); err != nil {
		return errorsmod.Wrapf(ErrMalformedProof, "could not verify absence of key %X: %v", key, err)
	}

	// Verify chained membership proof starting from index 1 with value = subroot
	return verifyChainedMembershipProof(root.GetHash(), specs, proof.Proofs, mpath, subroot, 1)
}

// verifyChainedMembershipProof takes a list of proofs and specs and verifies each proof sequentially,
// ensuring that the value is committed to by first proof and each subroot is committed to by the next subroot
// and checking that the final calculated root is equal to the given roothash.
// The proofs and specs are passed in from lowest subtree to the highest subtree, but the keys are passed in from highest subtree to lowest.
// The index specifies what index to start chaining the membership proofs, this is useful since the lowest proof may not be a membership proof, thus we
// will want to start the membership proof chaining from index 1 with value being the lowest subroot
func verifyChainedMembershipProof(root []byte, specs []*ics23.ProofSpec, proofs []*ics23.CommitmentProof, keys MerklePath, value []byte, index int) error {
	subroot := value
	for i := index; i < len(proofs); i++ {
		exist := proofs[i].GetExist()
		if exist == nil {
			return errorsmod.Wrapf(ErrMalformedProof, "expected proof type: %T at index %d, got: %T", &ics23.CommitmentProof_Exist{}, i, proofs[i].GetProof())
		}

		// Since keys are passed in from highest to lowest, we must grab their indices in reverse order
		// from the proofs and specs which are lowest to highest
		key, err := keys.GetKey(uint64(len(keys.KeyPath) - 1 - i))
		if err != nil {
			return errorsmod.Wrapf(ErrInvalidMerklePath, "key at index %d: %v", len(keys.KeyPath)-1-i, err)
		}

		if !bytes.Equal(exist.Key, key) {
			return errorsmod.Wrapf(ErrKeyMismatch, "proof at index %d is for key %X, requested key %X", i, exist.Key, key)
		}

		// recompute the subroot from the value being checked rather than the value carried by the proof
		claimed := &ics23.ExistenceProof{Key: exist.Key, Value: subroot, Leaf: exist.Leaf, Path: exist.Path}
		next, err := claimed.Calculate()
		if err != nil {
			return errorsmod.Wrapf(ErrMalformedProof, "could not calculate proof root at index %d, merkle tree may be empty. %v", i, err)
		}

		if err := claimed.Verify(specs[i], next, key, subroot); err != nil {
			return errorsmod.Wrapf(ErrMalformedProof, "proof at index %d does not satisfy its proof spec: %v", i, err)
		}

		subroot = next
	}

	// Check that chained proof root equals passed-in root
	if !bytes.Equal(root, subroot) {
		return errorsmod.Wrapf(ErrRootMismatch, "proof did not commit to expected root: %X, got: %X. Please ensure proof was submitted with correct proofHeight and to the correct chain.", root, subroot)
	}

	return nil
}

// Empty returns true if the root is empty
func (proof *MerkleProof) Empty() bool {
	return proof == nil || len(proof.Proofs) == 0
}

// ValidateBasic checks if the proof is empty.
func (proof MerkleProof) ValidateBasic() error {
	if proof.Empty() {
		return errorsmod.Wrap(ErrMalformedProof, "proof cannot be empty")
	}

	for i, p := range proof.Proofs {
		if p == nil || p.GetProof() == nil {
			return errorsmod.Wrapf(ErrMalformedProof, "proof at index %d is empty", i)
		}
	}

	return nil
}

// validateVerificationArgs verifies the proof arguments are valid.
// The merkle path and merkle proof contain a list of keys and their proofs
// which correspond to individual trees. The length of these keys and their proofs
// must equal the length of the given specs. All arguments must be non-empty.
func validateVerificationArgs(proof MerkleProof, specs []*ics23.ProofSpec, root exported.Root, path exported.Path) (MerklePath, error) {
	if err := proof.ValidateBasic(); err != nil {
		return MerklePath{}, err
	}

	if root == nil || root.Empty() {
		return MerklePath{}, errorsmod.Wrap(ErrRootMismatch, "root cannot be empty")
	}

	mpath, ok := path.(MerklePath)
	if !ok {
		return MerklePath{}, errorsmod.Wrapf(ErrInvalidMerklePath, "path %v is not of type MerkleProof", path)
	}

	if len(specs) != len(proof.Proofs) {
		return MerklePath{}, errorsmod.Wrapf(ErrMalformedProof,
			"length of specs: %d not equal to length of proof: %d",
			len(specs), len(proof.Proofs))
	}

	if len(mpath.KeyPath) != len(specs) {
		return MerklePath{}, errorsmod.Wrapf(ErrInvalidMerklePath, "path length %d not same as proof %d",
			len(mpath.KeyPath), len(specs))
	}

	for i, spec := range specs {
		if spec == nil {
			return MerklePath{}, errorsmod.Wrapf(ErrMalformedProof, "spec at position %d is nil", i)
		}
	}

	return mpath, nil
}
