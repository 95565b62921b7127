package ibctesting

import (
	"github.com/stretchr/testify/require"
)

// Path contains two endpoints representing two chains connected over IBC
type Path struct {
	EndpointA *Endpoint
	EndpointB *Endpoint
}

// NewPath constructs an endpoint for each chain using the default values
// for the endpoints. Each endpoint is updated to have a pointer to the
// counterparty endpoint.
func NewPath(chainA, chainB *TestChain) *Path {
	endpointA := NewDefaultEndpoint(chainA)
	endpointB := NewDefaultEndpoint(chainB)

	endpointA.Counterparty = endpointB
	endpointB.Counterparty = endpointA

	return &Path{
		EndpointA: endpointA,
		EndpointB: endpointB,
	}
}

// Setup constructs a client, connection, and channel on both chains provided. It will
// fail if any error occurs.
func (path *Path) Setup() {
	path.SetupConnections()

	// channels can also be referred to as 'paths'
	path.CreateChannels()
}

// SetupClients is a helper function to create clients on both chains. It assumes the
// caller does not anticipate any errors.
func (path *Path) SetupClients() {
	err := path.EndpointA.CreateClient()
	require.NoError(path.EndpointA.Chain.TB, err)

	err = path.EndpointB.CreateClient()
	require.NoError(path.EndpointB.Chain.TB, err)
}

// SetupConnections is a helper function to create clients and the appropriate
// connections on both the source and counterparty chain. It assumes the caller does not
// anticipate any errors.
func (path *Path) SetupConnections() {
	path.SetupClients()

	path.CreateConnections()
}

// CreateConnections constructs and executes connection handshake messages in order to create
// OPEN connections on chainA and chainB. The function expects the connections to be
// successfully opened otherwise testing will fail.
func (path *Path) CreateConnections() {
	err := path.EndpointA.ConnOpenInit()
	require.NoError(path.EndpointA.Chain.TB, err)

	err = path.EndpointB.ConnOpenTry()
	require.NoError(path.EndpointB.Chain.TB, err)

	err = path.EndpointA.ConnOpenAck()
	require.NoError(path.EndpointA.Chain.TB, err)

	err = path.EndpointB.ConnOpenConfirm()
	require.NoError(path.EndpointB.Chain.TB, err)

	// ensure counterparty is up to date
	err = path.EndpointA.UpdateClient()
	require.NoError(path.EndpointA.Chain.TB, err)
}

// BindPorts binds the channel port of each endpoint to the mock module.
func (path *Path) BindPorts() {
	err := path.EndpointA.BindPort()
	require.NoError(path.EndpointA.Chain.TB, err)

	err = path.EndpointB.BindPort()
	require.NoError(path.EndpointB.Chain.TB, err)
}

// CreateChannels binds the ports and constructs and executes channel handshake
// messages in order to create OPEN channels on chainA and chainB. The function
// expects the channels to be successfully opened otherwise testing will fail.
func (path *Path) CreateChannels() {
	path.BindPorts()

	err := path.EndpointA.ChanOpenInit()
	require.NoError(path.EndpointA.Chain.TB, err)

	err = path.EndpointB.ChanOpenTry()
	require.NoError(path.EndpointB.Chain.TB, err)

	err = path.EndpointA.ChanOpenAck()
	require.NoError(path.EndpointA.Chain.TB, err)

	err = path.EndpointB.ChanOpenConfirm()
	require.NoError(path.EndpointB.Chain.TB, err)

	// ensure counterparty is up to date
	err = path.EndpointA.UpdateClient()
	require.NoError(path.EndpointA.Chain.TB, err)
}
