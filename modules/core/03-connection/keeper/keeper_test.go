package keeper_test

import (
	"testing"

	testifysuite "github.com/stretchr/testify/suite"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	ibctesting "github.com/eclipse-ibc/eclipse-ibc-go/testing"
)

type KeeperTestSuite struct {
	testifysuite.Suite

	coordinator *ibctesting.Coordinator

	// testing chains used for convenience and readability
	chainA *ibctesting.TestChain
	chainB *ibctesting.TestChain
}

func (suite *KeeperTestSuite) SetupTest() {
	suite.coordinator = ibctesting.NewCoordinator(suite.T(), 2)
	suite.chainA = suite.coordinator.GetChain(ibctesting.GetChainID(1))
	suite.chainB = suite.coordinator.GetChain(ibctesting.GetChainID(2))
}

func TestKeeperTestSuite(t *testing.T) {
	testifysuite.Run(t, new(KeeperTestSuite))
}

func (suite *KeeperTestSuite) TestSetAndGetConnection() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	firstConnection := types.FormatConnectionIdentifier(0)

	// check first connection does not exist
	_, existed := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetConnection(suite.chainA.GetContext(), firstConnection)
	suite.Require().False(existed)
	suite.Require().False(suite.chainA.App.GetIBCKeeper().ConnectionKeeper.HasConnection(suite.chainA.GetContext(), firstConnection))

	path.CreateConnections()
	suite.Require().Equal(firstConnection, path.EndpointA.ConnectionID)

	connection, existed := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetConnection(suite.chainA.GetContext(), firstConnection)
	suite.Require().True(existed)
	suite.Require().True(suite.chainA.App.GetIBCKeeper().ConnectionKeeper.HasConnection(suite.chainA.GetContext(), firstConnection))
	suite.Require().Equal(types.OPEN, connection.State)
	suite.Require().Equal(path.EndpointA.ClientID, connection.ClientId)
	suite.Require().Equal(path.EndpointB.ClientID, connection.Counterparty.ClientId)
	suite.Require().Equal(path.EndpointB.ConnectionID, connection.Counterparty.ConnectionId)
}

func (suite *KeeperTestSuite) TestSetAndGetClientConnectionPaths() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	_, found := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetClientConnectionPaths(suite.chainA.GetContext(), path.EndpointA.ClientID)
	suite.False(found)

	connIDs := []string{"connection-0", "connection-7"}
	suite.chainA.App.GetIBCKeeper().ConnectionKeeper.SetClientConnectionPaths(suite.chainA.GetContext(), path.EndpointA.ClientID, connIDs)

	paths, found := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetClientConnectionPaths(suite.chainA.GetContext(), path.EndpointA.ClientID)
	suite.True(found)
	suite.EqualValues(connIDs, paths)
}

// create 2 connections: A0 - B0, A1 - B1
func (suite *KeeperTestSuite) TestGetAllConnections() {
	path1 := ibctesting.NewPath(suite.chainA, suite.chainB)
	path1.SetupConnections()

	path2 := ibctesting.NewPath(suite.chainA, suite.chainB)
	path2.EndpointA.ClientID = path1.EndpointA.ClientID
	path2.EndpointB.ClientID = path1.EndpointB.ClientID
	path2.CreateConnections()

	counterpartyB0 := types.NewCounterparty(path1.EndpointB.ClientID, path1.EndpointB.ConnectionID, suite.chainB.GetPrefix())
	counterpartyB1 := types.NewCounterparty(path2.EndpointB.ClientID, path2.EndpointB.ConnectionID, suite.chainB.GetPrefix())

	conn1 := types.NewConnectionEnd(types.OPEN, path1.EndpointA.ClientID, counterpartyB0, types.GetCompatibleVersions(), ibctesting.DefaultDelayPeriod)
	conn2 := types.NewConnectionEnd(types.OPEN, path2.EndpointA.ClientID, counterpartyB1, types.GetCompatibleVersions(), ibctesting.DefaultDelayPeriod)

	iconn1 := types.NewIdentifiedConnection(path1.EndpointA.ConnectionID, conn1)
	iconn2 := types.NewIdentifiedConnection(path2.EndpointA.ConnectionID, conn2)

	expConnections := []types.IdentifiedConnection{iconn1, iconn2}

	connections := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetAllConnections(suite.chainA.GetContext())
	suite.Require().Len(connections, len(expConnections))
	suite.Require().Equal(expConnections, connections)

	paths, found := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetClientConnectionPaths(suite.chainA.GetContext(), path1.EndpointA.ClientID)
	suite.Require().True(found)
	suite.Require().Equal([]string{path1.EndpointA.ConnectionID, path2.EndpointA.ConnectionID}, paths)
}

func (suite *KeeperTestSuite) TestGenerateConnectionIdentifier() {
	connectionKeeper := suite.chainA.App.GetIBCKeeper().ConnectionKeeper

	suite.Require().Equal(uint64(0), connectionKeeper.GetNextConnectionSequence(suite.chainA.GetContext()))

	suite.Require().Equal("connection-0", connectionKeeper.GenerateConnectionIdentifier(suite.chainA.GetContext()))
	suite.Require().Equal("connection-1", connectionKeeper.GenerateConnectionIdentifier(suite.chainA.GetContext()))
	suite.Require().Equal(uint64(2), connectionKeeper.GetNextConnectionSequence(suite.chainA.GetContext()))
}
