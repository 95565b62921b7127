package eclipse

import (
	"strings"

	"cosmossdk.io/core/header"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState from an eclipse chain. FrozenHeight is zero while the client is
// not frozen and is set to the height at which misbehaviour was detected.
type ClientState struct {
	ChainId      string             `json:"chain_id" yaml:"chain_id"` //nolint:revive
	LatestHeader Header             `json:"latest_header" yaml:"latest_header"`
	FrozenHeight clienttypes.Height `json:"frozen_height" yaml:"frozen_height"`
}

// NewClientState creates a new ClientState instance
func NewClientState(chainID string, latestHeader Header) *ClientState {
	return &ClientState{
		ChainId:      chainID,
		LatestHeader: latestHeader,
	}
}

// GetChainID returns the chain-id
func (cs ClientState) GetChainID() string {
	return cs.ChainId
}

// ClientType is eclipse.
func (ClientState) ClientType() string {
	return exported.Eclipse
}

// LatestHeight returns the height of the latest header.
func (cs ClientState) LatestHeight() clienttypes.Height {
	return cs.LatestHeader.Height
}

// IsFrozen returns true if misbehaviour has been detected for the client.
func (cs ClientState) IsFrozen() bool {
	return !cs.FrozenHeight.IsZero()
}

// Validate performs a basic validation of the client state fields.
func (cs ClientState) Validate() error {
	if strings.TrimSpace(cs.ChainId) == "" {
		return errorsmod.Wrap(ErrInvalidChainID, "chain id cannot be empty string")
	}
	return cs.LatestHeader.ValidateBasic()
}

func (cs ClientState) status() exported.Status {
	if cs.IsFrozen() {
		return exported.Frozen
	}
	return exported.Active
}

// initialize checks that the initial consensus state is the one committed to by
// the latest header and stores the client state, the consensus state and its metadata.
func (cs ClientState) initialize(headerInfo header.Info, clientStore corestore.KVStore, consensusState *ConsensusState) error {
	if cs.IsFrozen() {
		return errorsmod.Wrapf(clienttypes.ErrInvalidInitialState, "client cannot be frozen at creation, frozen height %s", cs.FrozenHeight)
	}

	if !consensusState.Equal(cs.LatestHeader.ConsensusState()) {
		return errorsmod.Wrap(clienttypes.ErrInvalidInitialState, "consensus state does not match the latest header of the client state")
	}

	setClientState(clientStore, &cs)
	setConsensusState(clientStore, consensusState, cs.LatestHeight())
	setConsensusMetadata(headerInfo, clientStore, cs.LatestHeight())

	return nil
}

// verifyMembership is a generic proof verification method which verifies a proof of the existence of a value at a given CommitmentPath at the specified height.
// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
func (cs ClientState) verifyMembership(
	clientStore corestore.KVStore,
	height exported.Height,
	proof []byte,
	path exported.Path,
	value []byte,
) error {
	merkleProof, consensusState, err := cs.proofAndConsensusState(clientStore, height, proof)
	if err != nil {
		return err
	}

	return merkleProof.VerifyMembership(commitmenttypes.GetSDKSpecs(), consensusState.GetRoot(), path, value)
}

// verifyNonMembership is a generic proof verification method which verifies the absence of a given CommitmentPath at a specified height.
// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
func (cs ClientState) verifyNonMembership(
	clientStore corestore.KVStore,
	height exported.Height,
	proof []byte,
	path exported.Path,
) error {
	merkleProof, consensusState, err := cs.proofAndConsensusState(clientStore, height, proof)
	if err != nil {
		return err
	}

	return merkleProof.VerifyNonMembership(commitmenttypes.GetSDKSpecs(), consensusState.GetRoot(), path)
}

// proofAndConsensusState performs the checks shared by membership and non-membership
// verification and returns the decoded proof together with the consensus state at height.
func (cs ClientState) proofAndConsensusState(clientStore corestore.KVStore, height exported.Height, proof []byte) (commitmenttypes.MerkleProof, *ConsensusState, error) {
	if cs.IsFrozen() {
		return commitmenttypes.MerkleProof{}, nil, errorsmod.Wrapf(clienttypes.ErrClientFrozen, "client frozen at height %s", cs.FrozenHeight)
	}

	if cs.LatestHeight().LT(height) {
		return commitmenttypes.MerkleProof{}, nil, errorsmod.Wrapf(
			clienttypes.ErrConsensusStateNotFound,
			"client state height < proof height (%s < %s), please ensure the client has been updated", cs.LatestHeight(), height,
		)
	}

	consensusState, found := GetConsensusState(clientStore, height)
	if !found {
		return commitmenttypes.MerkleProof{}, nil, errorsmod.Wrap(clienttypes.ErrConsensusStateNotFound, "please ensure the proof was constructed against a height that exists on the client")
	}

	merkleProof, err := commitmenttypes.NewMerkleProofFromBytes(proof)
	if err != nil {
		return commitmenttypes.MerkleProof{}, nil, err
	}

	return merkleProof, consensusState, nil
}

// getTimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (ClientState) getTimestampAtHeight(clientStore corestore.KVStore, height exported.Height) (uint64, error) {
	consensusState, found := GetConsensusState(clientStore, height)
	if !found {
		return 0, errorsmod.Wrapf(clienttypes.ErrConsensusStateNotFound, "height (%s)", height)
	}
	return consensusState.GetTimestamp(), nil
}

// TypeURL implements exported.Marshaler.
func (ClientState) TypeURL() string {
	return ClientStateTypeURL
}

// Marshal encodes the client state as eclipse.ibc.v1.chain.ClientState.
func (cs ClientState) Marshal() ([]byte, error) {
	headerBz, err := cs.LatestHeader.Marshal()
	if err != nil {
		return nil, err
	}

	bz := wire.AppendString(nil, 1, cs.ChainId)
	bz = wire.AppendMessage(bz, 2, headerBz)
	if cs.IsFrozen() {
		bz = wire.AppendMessage(bz, 3, cs.FrozenHeight.Marshal())
	}
	return bz, nil
}

// Unmarshal decodes an eclipse.ibc.v1.chain.ClientState.
func (cs *ClientState) Unmarshal(bz []byte) error {
	var clientState ClientState
	err := wire.Range(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			clientState.ChainId = string(f.Bytes)
		case 2:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			return clientState.LatestHeader.Unmarshal(f.Bytes)
		case 3:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			return clientState.FrozenHeight.Unmarshal(f.Bytes)
		}
		return nil
	})
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrEncoding, "failed to unmarshal eclipse client state: %v", err)
	}
	*cs = clientState
	return nil
}
