package ibctesting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
)

// AppCreator returns the application a TestChain runs.
type AppCreator func(tb testing.TB, chainID string) *simapp.SimApp

// DefaultTestingAppInit would be switched to a custom AppCreator by tests that
// need a differently wired application.
var DefaultTestingAppInit AppCreator = SetupTestingApp

// SetupTestingApp returns a SimApp backed by an in-memory database. The chain
// is initialised by the TestChain.
func SetupTestingApp(tb testing.TB, chainID string) *simapp.SimApp {
	tb.Helper()

	app, err := simapp.NewSimApp(log.NewTestLogger(tb), dbm.NewMemDB(), chainID)
	require.NoError(tb, err)

	return app
}
