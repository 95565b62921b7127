package ibctesting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	ibctypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
)

// TestChain is a testing struct that wraps a SimApp with the last header it
// committed. Every message is delivered in its own block stamped with the
// coordinator time, and the header of that block is what the counterparty
// light client is updated with.
type TestChain struct {
	testing.TB

	Coordinator  *Coordinator
	App          *simapp.SimApp
	ChainID      string
	LatestHeader *eclipse.Header // header of the last committed block
}

// NewTestChain initializes a new test chain with a default SimApp.
func NewTestChain(t *testing.T, coord *Coordinator, chainID string) *TestChain {
	t.Helper()
	return NewCustomAppTestChain(t, coord, chainID, DefaultTestingAppInit)
}

// NewCustomAppTestChain initializes a new TestChain using the given AppCreator.
// The chain is initialised with the default IBC genesis state in its first block.
func NewCustomAppTestChain(t *testing.T, coord *Coordinator, chainID string, appCreator AppCreator) *TestChain {
	t.Helper()

	app := appCreator(t, chainID)

	header, err := app.InitChain(ibctypes.DefaultGenesisState(), coord.CurrentTime)
	require.NoError(t, err)

	coord.IncrementTime()

	return &TestChain{
		TB:           t,
		Coordinator:  coord,
		App:          app,
		ChainID:      chainID,
		LatestHeader: header,
	}
}

// GetContext returns the context keepers are called with.
func (chain *TestChain) GetContext() context.Context {
	return chain.App.Context()
}

// GetSimApp returns the SimApp of the chain.
func (chain *TestChain) GetSimApp() *simapp.SimApp {
	return chain.App
}

// GetPrefix returns the commitment prefix of the chain's IBC store.
func (*TestChain) GetPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix([]byte(exported.StoreKey))
}

// LatestHeight returns the height of the last committed block.
func (chain *TestChain) LatestHeight() clienttypes.Height {
	return chain.LatestHeader.Height
}

// QueryProof returns the encoded merkle proof of key in the IBC store at the
// latest committed height, together with that height.
func (chain *TestChain) QueryProof(key []byte) ([]byte, clienttypes.Height) {
	return chain.QueryProofAtHeight(key, int64(chain.LatestHeight().RevisionHeight))
}

// QueryProofAtHeight returns the encoded merkle proof of key in the IBC store
// committed at height, together with that height.
func (chain *TestChain) QueryProofAtHeight(key []byte, height int64) ([]byte, clienttypes.Height) {
	_, proof, err := chain.App.QueryProof(key, height)
	require.NoError(chain.TB, err)

	return proof, clienttypes.NewHeight(0, uint64(height))
}

// NextBlock commits an empty block at the coordinator time.
//
// CONTRACT: the coordinator time must be incremented after calling NextBlock.
func (chain *TestChain) NextBlock() {
	header, err := chain.App.Commit(chain.Coordinator.CurrentTime)
	require.NoError(chain.TB, err)

	chain.LatestHeader = header
}

// SendMsgs delivers the messages, each in its own block, and returns their
// responses. It stops at the first failing message. A message that froze a
// client still commits a block, which becomes the chain's latest header.
func (chain *TestChain) SendMsgs(msgs ...ibctypes.Msg) ([]any, error) {
	responses := make([]any, 0, len(msgs))
	for _, msg := range msgs {
		res, header, err := chain.App.DeliverMsg(chain.Coordinator.CurrentTime, msg)
		if header != nil {
			chain.LatestHeader = header
			chain.Coordinator.IncrementTime()
		}
		if err != nil {
			return responses, err
		}

		responses = append(responses, res)
	}

	return responses, nil
}

// SendMsg delivers a single message and returns its response.
func (chain *TestChain) SendMsg(msg ibctypes.Msg) (any, error) {
	responses, err := chain.SendMsgs(msg)
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// GetClientState retrieves the client state for the provided clientID. The client is
// expected to exist otherwise testing will fail.
func (chain *TestChain) GetClientState(clientID string) *eclipse.ClientState {
	clientState, found := chain.App.GetIBCKeeper().ClientKeeper.GetClientState(chain.GetContext(), clientID)
	require.True(chain.TB, found)

	eclipseClientState, ok := clientState.(*eclipse.ClientState)
	require.True(chain.TB, ok)

	return eclipseClientState
}

// GetConsensusState retrieves the consensus state for the provided clientID and height.
// It will return a success boolean depending on if consensus state exists or not.
func (chain *TestChain) GetConsensusState(clientID string, height exported.Height) (exported.ConsensusState, bool) {
	return chain.App.GetIBCKeeper().ClientKeeper.GetClientConsensusState(chain.GetContext(), clientID, height)
}

// GetConnection retrieves a connection end. The connection is expected to exist
// otherwise testing will fail.
func (chain *TestChain) GetConnection(connectionID string) connectiontypes.ConnectionEnd {
	connection, found := chain.App.GetIBCKeeper().ConnectionKeeper.GetConnection(chain.GetContext(), connectionID)
	require.True(chain.TB, found)

	return connection
}

// GetChannel retrieves a channel end. The channel is expected to exist
// otherwise testing will fail.
func (chain *TestChain) GetChannel(portID, channelID string) channeltypes.Channel {
	channel, found := chain.App.GetIBCKeeper().ChannelKeeper.GetChannel(chain.GetContext(), portID, channelID)
	require.True(chain.TB, found)

	return channel
}
