package eclipse

import (
	"bytes"

	corestore "cosmossdk.io/core/store"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// CheckForMisbehaviour detects a header that conflicts with a consensus state
// already stored for the same height. A header committing to a different root
// at a known height is evidence that the counterparty chain forked.
func (*ClientState) CheckForMisbehaviour(clientStore corestore.KVStore, clientMsg exported.ClientMessage) bool {
	header, ok := clientMsg.(*Header)
	if !ok {
		return false
	}

	existing, found := GetConsensusState(clientStore, header.Height)
	if !found {
		return false
	}

	return !bytes.Equal(existing.CommitmentRoot, header.CommitmentRoot)
}

// UpdateStateOnMisbehaviour freezes the client at the height of the conflicting header.
func (cs *ClientState) UpdateStateOnMisbehaviour(clientStore corestore.KVStore, clientMsg exported.ClientMessage) {
	if header, ok := clientMsg.(*Header); ok {
		cs.FrozenHeight = header.Height
	}
	if cs.FrozenHeight.IsZero() {
		cs.FrozenHeight = cs.LatestHeight()
	}

	setClientState(clientStore, cs)
}
