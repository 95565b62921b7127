package ibctesting

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	ChainIDPrefix = "eclipse-testchain"
	TimeIncrement = 5 * time.Second

	genesisTime = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
)

// Coordinator drives a set of TestChains off a shared clock. Each block a
// chain commits is stamped with CurrentTime, which then moves forward by
// TimeIncrement, so block times strictly increase on every chain.
type Coordinator struct {
	*testing.T

	CurrentTime time.Time
	Chains      map[string]*TestChain
}

// NewCoordinator returns a Coordinator running n chains on the default SimApp.
func NewCoordinator(t *testing.T, n int) *Coordinator {
	t.Helper()
	return NewCustomAppCoordinator(t, n, DefaultTestingAppInit)
}

// NewCustomAppCoordinator returns a Coordinator running n chains built by appCreator.
// Chains are named by GetChainID(1) to GetChainID(n).
func NewCustomAppCoordinator(t *testing.T, n int, appCreator AppCreator) *Coordinator {
	t.Helper()

	coord := &Coordinator{
		T:           t,
		CurrentTime: genesisTime,
		Chains:      make(map[string]*TestChain, n),
	}
	for i := 1; i <= n; i++ {
		chainID := GetChainID(i)
		coord.Chains[chainID] = NewCustomAppTestChain(t, coord, chainID, appCreator)
	}

	return coord
}

// IncrementTime advances the clock by TimeIncrement.
func (coord *Coordinator) IncrementTime() {
	coord.IncrementTimeBy(TimeIncrement)
}

// IncrementTimeBy advances the clock by increment.
func (coord *Coordinator) IncrementTimeBy(increment time.Duration) {
	coord.CurrentTime = coord.CurrentTime.Add(increment).UTC()
}

// GetChain returns the chain named chainID, failing the test if there is none.
func (coord *Coordinator) GetChain(chainID string) *TestChain {
	chain, found := coord.Chains[chainID]
	require.True(coord.T, found, "chain %s does not exist", chainID)
	return chain
}

// GetChainID returns the chain ID of the index-th chain of a Coordinator.
func GetChainID(index int) string {
	return ChainIDPrefix + strconv.Itoa(index)
}

// CommitBlock commits one empty block on each of the given chains, all at the
// same time, then advances the clock.
func (coord *Coordinator) CommitBlock(chains ...*TestChain) {
	for _, chain := range chains {
		chain.NextBlock()
	}
	coord.IncrementTime()
}

// CommitNBlocks commits n empty blocks on chain.
func (coord *Coordinator) CommitNBlocks(chain *TestChain, n uint64) {
	for range n {
		chain.NextBlock()
		coord.IncrementTime()
	}
}
