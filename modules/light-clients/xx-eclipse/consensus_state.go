package eclipse

import (
	"bytes"
	"time"

	errorsmod "cosmossdk.io/errors"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is the commitment root and timestamp of an eclipse chain at a given height.
type ConsensusState struct {
	CommitmentRoot []byte    `json:"commitment_root" yaml:"commitment_root"`
	Timestamp      time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewConsensusState creates a new ConsensusState instance.
func NewConsensusState(root []byte, timestamp time.Time) *ConsensusState {
	return &ConsensusState{
		CommitmentRoot: root,
		Timestamp:      timestamp,
	}
}

// ClientType returns Eclipse
func (ConsensusState) ClientType() string {
	return exported.Eclipse
}

// GetRoot returns the commitment Root for the specific
func (cs ConsensusState) GetRoot() exported.Root {
	return commitmenttypes.NewMerkleRoot(cs.CommitmentRoot)
}

// GetTimestamp returns block time in nanoseconds of the header that created consensus state
func (cs ConsensusState) GetTimestamp() uint64 {
	return uint64(cs.Timestamp.UnixNano())
}

// Equal returns true if both consensus states commit to the same root at the same time.
func (cs ConsensusState) Equal(other *ConsensusState) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(cs.CommitmentRoot, other.CommitmentRoot) && cs.Timestamp.Equal(other.Timestamp)
}

// ValidateBasic defines a basic validation for the eclipse consensus state.
func (cs ConsensusState) ValidateBasic() error {
	if len(cs.CommitmentRoot) == 0 {
		return errorsmod.Wrap(clienttypes.ErrInvalidConsensus, "root cannot be empty")
	}
	if cs.Timestamp.UnixNano() <= 0 {
		return errorsmod.Wrap(clienttypes.ErrInvalidConsensus, "timestamp must be a positive Unix time")
	}
	return nil
}

// TypeURL implements exported.Marshaler.
func (ConsensusState) TypeURL() string {
	return ConsensusStateTypeURL
}

// Marshal encodes the consensus state as eclipse.ibc.v1.chain.ConsensusState.
func (cs ConsensusState) Marshal() ([]byte, error) {
	bz := wire.AppendBytes(nil, 1, cs.CommitmentRoot)
	if cs.Timestamp.IsZero() {
		return bz, nil
	}
	return wire.AppendTimestamp(bz, 2, cs.Timestamp)
}

// Unmarshal decodes an eclipse.ibc.v1.chain.ConsensusState.
func (cs *ConsensusState) Unmarshal(bz []byte) error {
	var consensusState ConsensusState
	err := wire.Range(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			consensusState.CommitmentRoot = append([]byte(nil), f.Bytes...)
		case 2:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			ts, err := wire.UnmarshalTimestamp(f.Bytes)
			if err != nil {
				return err
			}
			consensusState.Timestamp = ts
		}
		return nil
	})
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrEncoding, "failed to unmarshal eclipse consensus state: %v", err)
	}
	*cs = consensusState
	return nil
}
