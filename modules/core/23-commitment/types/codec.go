package types

import (
	errorsmod "cosmossdk.io/errors"

	ics23 "github.com/cosmos/ics23/go"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
)

// Marshal encodes the proof with the ibc.core.commitment.v1.MerkleProof layout.
func (proof MerkleProof) Marshal() ([]byte, error) {
	var bz []byte
	for i, p := range proof.Proofs {
		pbz, err := p.Marshal()
		if err != nil {
			return nil, errorsmod.Wrapf(ErrMalformedProof, "failed to marshal proof at index %d: %v", i, err)
		}
		bz = wire.AppendMessage(bz, 1, pbz)
	}
	return bz, nil
}

// Unmarshal decodes an ibc.core.commitment.v1.MerkleProof.
func (proof *MerkleProof) Unmarshal(bz []byte) error {
	var proofs []*ics23.CommitmentProof
	err := wire.Range(bz, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		if err := wire.ExpectType(f, protowire.BytesType); err != nil {
			return err
		}
		p := &ics23.CommitmentProof{}
		if err := p.Unmarshal(f.Bytes); err != nil {
			return err
		}
		proofs = append(proofs, p)
		return nil
	})
	if err != nil {
		return errorsmod.Wrapf(ErrMalformedProof, "failed to unmarshal merkle proof: %v", err)
	}
	proof.Proofs = proofs
	return nil
}

// NewMerkleProofFromBytes decodes and validates a proof carried in a datagram.
func NewMerkleProofFromBytes(bz []byte) (MerkleProof, error) {
	if len(bz) == 0 {
		return MerkleProof{}, errorsmod.Wrap(ErrMalformedProof, "proof cannot be empty")
	}

	var proof MerkleProof
	if err := proof.Unmarshal(bz); err != nil {
		return MerkleProof{}, err
	}
	if err := proof.ValidateBasic(); err != nil {
		return MerkleProof{}, err
	}
	return proof, nil
}

// Marshal encodes the prefix with the ibc.core.commitment.v1.MerklePrefix layout.
func (mp MerklePrefix) Marshal() []byte {
	return wire.AppendBytes(nil, 1, mp.KeyPrefix)
}

// Unmarshal decodes an ibc.core.commitment.v1.MerklePrefix.
func (mp *MerklePrefix) Unmarshal(bz []byte) error {
	return wire.Range(bz, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		if err := wire.ExpectType(f, protowire.BytesType); err != nil {
			return err
		}
		mp.KeyPrefix = append([]byte(nil), f.Bytes...)
		return nil
	})
}
