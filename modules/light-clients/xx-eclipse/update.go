package eclipse

import (
	"cosmossdk.io/core/header"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// VerifyClientMessage checks if the clientMessage is of type Header and performs
// stateless validation of the header against the client state.
func (cs *ClientState) VerifyClientMessage(clientMsg exported.ClientMessage) error {
	switch msg := clientMsg.(type) {
	case *Header:
		return cs.verifyHeader(msg)
	default:
		return errorsmod.Wrapf(clienttypes.ErrInvalidClientType, "expected type of %T, got type %T", &Header{}, msg)
	}
}

// verifyHeader checks the header is well formed and does not move the client to
// a different revision. Headers at or below the latest height are accepted here
// so that conflicting headers can be detected as misbehaviour.
func (cs *ClientState) verifyHeader(hdr *Header) error {
	if err := hdr.ValidateBasic(); err != nil {
		return err
	}

	if hdr.Height.RevisionNumber != cs.LatestHeight().RevisionNumber {
		return errorsmod.Wrapf(
			clienttypes.ErrRevisionMismatch,
			"header revision %d, client revision %d", hdr.Height.RevisionNumber, cs.LatestHeight().RevisionNumber,
		)
	}

	return nil
}

// UpdateState stores the consensus state committed to by the header and makes
// the header the latest header of the client. The header height must be greater
// than the current latest height.
func (cs *ClientState) UpdateState(headerInfo header.Info, clientStore corestore.KVStore, clientMsg exported.ClientMessage) ([]exported.Height, error) {
	hdr, ok := clientMsg.(*Header)
	if !ok {
		return nil, errorsmod.Wrapf(clienttypes.ErrInvalidClientType, "expected type of %T, got type %T", &Header{}, clientMsg)
	}

	if hdr.Height.LTE(cs.LatestHeight()) {
		return nil, errorsmod.Wrapf(
			clienttypes.ErrHeaderHeightNotIncreasing,
			"header height %s, latest height %s", hdr.Height, cs.LatestHeight(),
		)
	}

	cs.LatestHeader = *hdr

	setConsensusState(clientStore, hdr.ConsensusState(), hdr.Height)
	setConsensusMetadata(headerInfo, clientStore, hdr.Height)
	setClientState(clientStore, cs)

	return []exported.Height{hdr.Height}, nil
}
