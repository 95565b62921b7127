package keeper_test

import (
	"time"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibctesting "github.com/eclipse-ibc/eclipse-ibc-go/testing"
)

// freezeClient marks the client of the endpoint as frozen at its latest height.
func freezeClient(endpoint *ibctesting.Endpoint) {
	clientState := endpoint.GetClientState()
	clientState.FrozenHeight = clientState.LatestHeight()
	endpoint.Chain.App.GetIBCKeeper().ClientKeeper.SetClientState(endpoint.Chain.GetContext(), endpoint.ClientID, clientState)
}

// TestConnOpenInit - chainA initializes (INIT state) a connection with
// chainB which is yet UNINITIALIZED
func (suite *KeeperTestSuite) TestConnOpenInit() {
	var (
		path        *ibctesting.Path
		version     *types.Version
		delayPeriod uint64
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success with non empty version",
			func() {
				version = types.GetCompatibleVersions()[0]
			},
			nil,
		},
		{
			"success with non zero delayPeriod",
			func() {
				delayPeriod = uint64(time.Hour.Nanoseconds())
			},
			nil,
		},
		{
			"invalid version",
			func() {
				version = &types.Version{}
			},
			types.ErrInvalidVersion,
		},
		{
			"unsupported version feature",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_DAG"})
			},
			types.ErrInvalidVersion,
		},
		{
			"client not found",
			func() {
				path.EndpointA.ClientID = "xx-eclipse-100"
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"client is frozen",
			func() {
				freezeClient(path.EndpointA)
			},
			clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			version = nil     // must be explicitly changed
			delayPeriod = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointB.ClientID, "", suite.chainB.GetPrefix())

			connectionID, err := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.ConnOpenInit(suite.chainA.GetContext(), path.EndpointA.ClientID, counterparty, version, delayPeriod)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

				connection := suite.chainA.GetConnection(connectionID)
				suite.Require().Equal(types.INIT, connection.State)
				suite.Require().Equal(counterparty, connection.Counterparty)
				suite.Require().Equal(delayPeriod, connection.DelayPeriod)
				if version != nil {
					suite.Require().Equal([]*types.Version{version}, connection.Versions)
				} else {
					suite.Require().Equal(types.GetCompatibleVersions(), connection.Versions)
				}

				paths, found := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.GetClientConnectionPaths(suite.chainA.GetContext(), path.EndpointA.ClientID)
				suite.Require().True(found)
				suite.Require().Equal([]string{connectionID}, paths)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", connectionID)
			}
		})
	}
}

// TestConnOpenTry - chainB calls ConnOpenTry to verify the state of
// connection on chainA is INIT
func (suite *KeeperTestSuite) TestConnOpenTry() {
	var (
		path        *ibctesting.Path
		delayPeriod uint64
		versions    []*types.Version
		initProof   []byte
		proofHeight clienttypes.Height
	)

	// queryInitProof proves chainA's connection end at the height chainB's client tracks
	queryInitProof := func() {
		initProof, proofHeight = path.EndpointA.QueryProof(host.ConnectionKey(path.EndpointA.ConnectionID))
	}

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success with delay period",
			func() {
				delayPeriod = uint64(time.Hour.Nanoseconds())

				// set delay period on counterparty to non-zero value
				connection := path.EndpointA.GetConnection()
				connection.DelayPeriod = delayPeriod
				path.EndpointA.SetConnection(connection)

				// commit in order for proof to return correct value
				suite.coordinator.CommitBlock(suite.chainA)
				suite.Require().NoError(path.EndpointB.UpdateClient())

				queryInitProof()
			},
			nil,
		},
		{
			"counterparty versions is empty",
			func() {
				versions = nil
			},
			types.ErrVersionNegotiationFailed,
		},
		{
			"counterparty versions don't have a match",
			func() {
				versions = []*types.Version{types.NewVersion("0.0", nil)}
			},
			types.ErrVersionNegotiationFailed,
		},
		{
			"delay period differs from the counterparty",
			func() {
				delayPeriod = 1
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"counterparty connection does not exist",
			func() {
				path.EndpointA.ConnectionID = types.FormatConnectionIdentifier(10)
				queryInitProof()
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"invalid proof",
			func() {
				initProof = []byte("invalid proof")
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"proof height is greater than the client latest height",
			func() {
				proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+1)
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"client not found",
			func() {
				path.EndpointB.ClientID = "xx-eclipse-100"
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"client is frozen",
			func() {
				freezeClient(path.EndpointB)
			},
			clienttypes.ErrClientFrozen,
		},
		{
			"counterparty connection already answered",
			func() {
				suite.Require().NoError(path.EndpointB.ConnOpenTry())
				queryInitProof()
			},
			types.ErrInvalidConnectionState,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			delayPeriod = 0
			versions = types.GetCompatibleVersions()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			suite.Require().NoError(path.EndpointA.ConnOpenInit())
			suite.Require().NoError(path.EndpointB.UpdateClient())
			queryInitProof()

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointA.ClientID, path.EndpointA.ConnectionID, suite.chainA.GetPrefix())

			connectionID, err := suite.chainB.App.GetIBCKeeper().ConnectionKeeper.ConnOpenTry(
				suite.chainB.GetContext(), counterparty, delayPeriod, path.EndpointB.ClientID,
				versions, initProof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

				connection := suite.chainB.GetConnection(connectionID)
				suite.Require().Equal(types.TRYOPEN, connection.State)
				suite.Require().Equal(counterparty, connection.Counterparty)
				suite.Require().Equal(delayPeriod, connection.DelayPeriod)
				suite.Require().Equal(types.GetCompatibleVersions(), connection.Versions)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", connectionID)
			}
		})
	}
}

// TestConnOpenAck - Chain A (ID #1) calls TestConnOpenAck to acknowledge (ACK state)
// the initialization (TRYINIT) of the connection on  Chain B (ID #2).
func (suite *KeeperTestSuite) TestConnOpenAck() {
	var (
		path        *ibctesting.Path
		version     *types.Version
		tryProof    []byte
		proofHeight clienttypes.Height
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"connection not found",
			func() {
				path.EndpointA.ConnectionID = types.FormatConnectionIdentifier(10)
			},
			types.ErrInvalidConnectionState,
		},
		{
			"connection state is not INIT",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = types.TRYOPEN
				path.EndpointA.SetConnection(connection)
			},
			types.ErrInvalidConnectionState,
		},
		{
			"version identifier is not supported",
			func() {
				version = types.NewVersion("2.0", []string{"ORDER_UNORDERED"})
			},
			types.ErrInvalidConnectionState,
		},
		{
			"version feature is not supported",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_DAG"})
			},
			types.ErrInvalidConnectionState,
		},
		{
			"version differs from the one selected by the counterparty",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"counterparty connection identifier does not match the proof",
			func() {
				path.EndpointB.ConnectionID = types.FormatConnectionIdentifier(10)
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"invalid proof",
			func() {
				tryProof = []byte("invalid proof")
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"proof height is greater than the client latest height",
			func() {
				proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+1)
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"client is frozen",
			func() {
				freezeClient(path.EndpointA)
			},
			clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			version = ibctesting.ConnectionVersion

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			suite.Require().NoError(path.EndpointA.ConnOpenInit())
			suite.Require().NoError(path.EndpointB.ConnOpenTry())
			suite.Require().NoError(path.EndpointA.UpdateClient())

			tryProof, proofHeight = path.EndpointB.QueryProof(host.ConnectionKey(path.EndpointB.ConnectionID))

			tc.malleate()

			err := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.ConnOpenAck(
				suite.chainA.GetContext(), path.EndpointA.ConnectionID, version,
				path.EndpointB.ConnectionID, tryProof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				connection := path.EndpointA.GetConnection()
				suite.Require().Equal(types.OPEN, connection.State)
				suite.Require().Equal(path.EndpointB.ConnectionID, connection.Counterparty.ConnectionId)
				suite.Require().Equal([]*types.Version{version}, connection.Versions)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestConnOpenConfirm - chainB calls ConnOpenConfirm to confirm that
// chainA state is now OPEN.
func (suite *KeeperTestSuite) TestConnOpenConfirm() {
	var (
		path        *ibctesting.Path
		ackProof    []byte
		proofHeight clienttypes.Height
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"connection not found",
			func() {
				path.EndpointB.ConnectionID = types.FormatConnectionIdentifier(10)
			},
			types.ErrInvalidConnectionState,
		},
		{
			"chain B's connection state is not TRYOPEN",
			func() {
				connection := path.EndpointB.GetConnection()
				connection.State = types.OPEN
				path.EndpointB.SetConnection(connection)
			},
			types.ErrInvalidConnectionState,
		},
		{
			"chain A's connection is not OPEN",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = types.INIT
				path.EndpointA.SetConnection(connection)

				suite.coordinator.CommitBlock(suite.chainA)
				suite.Require().NoError(path.EndpointB.UpdateClient())

				ackProof, proofHeight = path.EndpointA.QueryProof(host.ConnectionKey(path.EndpointA.ConnectionID))
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"invalid proof",
			func() {
				ackProof = []byte("invalid proof")
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"proof height is greater than the client latest height",
			func() {
				proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+1)
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"client is frozen",
			func() {
				freezeClient(path.EndpointB)
			},
			clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			suite.Require().NoError(path.EndpointA.ConnOpenInit())
			suite.Require().NoError(path.EndpointB.ConnOpenTry())
			suite.Require().NoError(path.EndpointA.ConnOpenAck())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			ackProof, proofHeight = path.EndpointA.QueryProof(host.ConnectionKey(path.EndpointA.ConnectionID))

			tc.malleate()

			err := suite.chainB.App.GetIBCKeeper().ConnectionKeeper.ConnOpenConfirm(
				suite.chainB.GetContext(), path.EndpointB.ConnectionID, ackProof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.OPEN, path.EndpointB.GetConnection().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
