package keeper_test

import (
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
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

// setConnectionState overwrites the state of the endpoint's connection.
func setConnectionState(endpoint *ibctesting.Endpoint, state connectiontypes.State) {
	connection := endpoint.GetConnection()
	connection.State = state
	endpoint.SetConnection(connection)
}

// TestChanOpenInit tests the OpenInit handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenInit directly. The channel is
// being created on chainA. The port is always bound to the mock module.
func (suite *KeeperTestSuite) TestChanOpenInit() {
	var (
		path           *ibctesting.Path
		portID         string
		order          types.Order
		connectionHops []string
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
			"success with ORDERED channel",
			func() {
				order = types.ORDERED
			},
			nil,
		},
		{
			"port is not bound",
			func() {
				portID = "unboundport"
			},
			porttypes.ErrPortNotBound,
		},
		{
			"connection does not exist",
			func() {
				connectionHops = []string{connectiontypes.FormatConnectionIdentifier(10)}
			},
			types.ErrConnectionNotOpen,
		},
		{
			"more than one connection hop",
			func() {
				connectionHops = []string{path.EndpointA.ConnectionID, path.EndpointA.ConnectionID}
			},
			types.ErrTooManyConnectionHops,
		},
		{
			"connection is not OPEN",
			func() {
				setConnectionState(path.EndpointA, connectiontypes.INIT)
			},
			types.ErrConnectionNotOpen,
		},
		{
			"connection version does not support the channel ordering",
			func() {
				order = types.NONE
			},
			connectiontypes.ErrInvalidVersion,
		},
		{
			"connection version not negotiated",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.Versions = append(connection.Versions, connectiontypes.NewVersion("2", []string{"ORDER_UNORDERED"}))
				path.EndpointA.SetConnection(connection)
			},
			connectiontypes.ErrInvalidVersion,
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

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			path.BindPorts()

			portID = ibctesting.MockPort
			order = types.UNORDERED
			connectionHops = []string{path.EndpointA.ConnectionID}
			counterparty := types.NewCounterparty(ibctesting.MockPort, "")

			tc.malleate()

			channelKeeper := suite.chainA.App.GetIBCKeeper().ChannelKeeper
			channelID, err := channelKeeper.ChanOpenInit(
				suite.chainA.GetContext(), order, connectionHops, portID, counterparty, ibctesting.DefaultChannelVersion,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(channelID)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(ibctesting.FirstChannelID, channelID)

			// nothing is stored before the write step
			suite.Require().False(channelKeeper.HasChannel(suite.chainA.GetContext(), portID, channelID))

			channelKeeper.WriteOpenInitChannel(suite.chainA.GetContext(), portID, channelID, order, connectionHops, counterparty, ibctesting.DefaultChannelVersion)

			channel, found := channelKeeper.GetChannel(suite.chainA.GetContext(), portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.NewChannel(types.INIT, order, counterparty, connectionHops, ibctesting.DefaultChannelVersion), channel)
			suite.Require().Equal(uint64(1), channelKeeper.GetNextChannelSequence(suite.chainA.GetContext()))

			seq, found := channelKeeper.GetNextSequenceSend(suite.chainA.GetContext(), portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(uint64(1), seq)
		})
	}
}

// TestChanOpenTry tests the OpenTry handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenTry directly. The channel
// is being created on chainB.
func (suite *KeeperTestSuite) TestChanOpenTry() {
	var (
		path                *ibctesting.Path
		portID              string
		order               types.Order
		connectionHops      []string
		counterparty        types.Counterparty
		counterpartyVersion string
		initProof           []byte
		proofHeight         clienttypes.Height
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
			"port is not bound",
			func() {
				portID = "unboundport"
			},
			porttypes.ErrPortNotBound,
		},
		{
			"connection does not exist",
			func() {
				connectionHops = []string{connectiontypes.FormatConnectionIdentifier(10)}
			},
			types.ErrConnectionNotOpen,
		},
		{
			"more than one connection hop",
			func() {
				connectionHops = []string{path.EndpointB.ConnectionID, path.EndpointB.ConnectionID}
			},
			types.ErrTooManyConnectionHops,
		},
		{
			"connection is not OPEN",
			func() {
				setConnectionState(path.EndpointB, connectiontypes.TRYOPEN)
			},
			types.ErrConnectionNotOpen,
		},
		{
			"connection version does not support the channel ordering",
			func() {
				connection := path.EndpointB.GetConnection()
				connection.Versions = []*connectiontypes.Version{connectiontypes.NewVersion(connectiontypes.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})}
				path.EndpointB.SetConnection(connection)
			},
			connectiontypes.ErrInvalidVersion,
		},
		{
			"channel already answers the counterparty channel",
			func() {
				suite.Require().NoError(path.EndpointB.ChanOpenTry())
			},
			types.ErrInvalidChannelState,
		},
		{
			"ordering does not match the counterparty channel",
			func() {
				order = types.ORDERED
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"counterparty version does not match",
			func() {
				counterpartyVersion = "version-2"
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"counterparty channel does not exist",
			func() {
				counterparty.ChannelId = "channel-10"
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
			path.SetupConnections()
			path.BindPorts()

			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			portID = ibctesting.MockPort
			order = types.UNORDERED
			connectionHops = []string{path.EndpointB.ConnectionID}
			counterparty = types.NewCounterparty(ibctesting.MockPort, path.EndpointA.ChannelID)
			counterpartyVersion = path.EndpointA.ChannelConfig.Version
			initProof, proofHeight = path.EndpointA.QueryProof(host.ChannelKey(ibctesting.MockPort, path.EndpointA.ChannelID))

			tc.malleate()

			channelKeeper := suite.chainB.App.GetIBCKeeper().ChannelKeeper
			channelID, err := channelKeeper.ChanOpenTry(
				suite.chainB.GetContext(), order, connectionHops, portID, counterparty,
				counterpartyVersion, initProof, proofHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(ibctesting.FirstChannelID, channelID)
			suite.Require().False(channelKeeper.HasChannel(suite.chainB.GetContext(), portID, channelID))

			channelKeeper.WriteOpenTryChannel(suite.chainB.GetContext(), portID, channelID, order, connectionHops, counterparty, counterpartyVersion)

			channel, found := channelKeeper.GetChannel(suite.chainB.GetContext(), portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(types.TRYOPEN, channel.State)
			suite.Require().Equal(counterparty, channel.Counterparty)
			suite.Require().Equal(uint64(1), channelKeeper.GetNextChannelSequence(suite.chainB.GetContext()))

			seq, found := channelKeeper.GetNextSequenceRecv(suite.chainB.GetContext(), portID, channelID)
			suite.Require().True(found)
			suite.Require().Equal(uint64(1), seq)
		})
	}
}

// TestChanOpenTryDistinctCounterpartyChains opens channels from two counterparty
// chains onto the same port of chainB. Both counterparties allocate channel-0, and
// chainB must answer each of them over its own connection.
func (suite *KeeperTestSuite) TestChanOpenTryDistinctCounterpartyChains() {
	coordinator := ibctesting.NewCoordinator(suite.T(), 3)
	chainA := coordinator.GetChain(ibctesting.GetChainID(1))
	chainB := coordinator.GetChain(ibctesting.GetChainID(2))
	chainC := coordinator.GetChain(ibctesting.GetChainID(3))

	pathAB := ibctesting.NewPath(chainA, chainB)
	pathAB.Setup()

	pathCB := ibctesting.NewPath(chainC, chainB)
	pathCB.SetupConnections()
	suite.Require().NotEqual(pathAB.EndpointB.ConnectionID, pathCB.EndpointB.ConnectionID)

	pathCB.BindPorts()
	suite.Require().NoError(pathCB.EndpointA.ChanOpenInit())
	suite.Require().Equal(pathAB.EndpointA.ChannelID, pathCB.EndpointA.ChannelID)

	suite.Require().NoError(pathCB.EndpointB.ChanOpenTry())
	suite.Require().NotEqual(pathAB.EndpointB.ChannelID, pathCB.EndpointB.ChannelID)

	channel := pathCB.EndpointB.GetChannel()
	suite.Require().Equal(types.TRYOPEN, channel.State)
	suite.Require().Equal([]string{pathCB.EndpointB.ConnectionID}, channel.ConnectionHops)

	// a second answer over the same connection is still refused
	channelKeeper := chainB.App.GetIBCKeeper().ChannelKeeper
	initProof, proofHeight := pathCB.EndpointA.QueryProof(host.ChannelKey(ibctesting.MockPort, pathCB.EndpointA.ChannelID))
	_, err := channelKeeper.ChanOpenTry(
		chainB.GetContext(), types.UNORDERED, []string{pathCB.EndpointB.ConnectionID}, ibctesting.MockPort,
		types.NewCounterparty(ibctesting.MockPort, pathCB.EndpointA.ChannelID),
		pathCB.EndpointA.ChannelConfig.Version, initProof, proofHeight,
	)
	suite.Require().ErrorIs(err, types.ErrInvalidChannelState)

	suite.Require().NoError(pathCB.EndpointA.ChanOpenAck())
	suite.Require().NoError(pathCB.EndpointB.ChanOpenConfirm())
	suite.Require().Equal(types.OPEN, pathCB.EndpointB.GetChannel().State)
	suite.Require().Equal(types.OPEN, pathAB.EndpointB.GetChannel().State)
}

// TestChanOpenAck tests the OpenAck handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenAck directly. The handshake
// call is occurring on chainA.
func (suite *KeeperTestSuite) TestChanOpenAck() {
	var (
		path                  *ibctesting.Path
		channelID             string
		counterpartyVersion   string
		counterpartyChannelID string
		tryProof              []byte
		proofHeight           clienttypes.Height
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
			"channel does not exist",
			func() {
				channelID = "channel-10"
			},
			types.ErrInvalidChannelState,
		},
		{
			"channel state is not INIT",
			func() {
				channel := path.EndpointA.GetChannel()
				channel.State = types.TRYOPEN
				path.EndpointA.SetChannel(channel)
			},
			types.ErrInvalidChannelState,
		},
		{
			"connection is not OPEN",
			func() {
				setConnectionState(path.EndpointA, connectiontypes.TRYOPEN)
			},
			types.ErrConnectionNotOpen,
		},
		{
			"counterparty version does not match",
			func() {
				counterpartyVersion = "version-2"
			},
			commitmenttypes.ErrProofVerificationFailed,
		},
		{
			"counterparty channel does not exist",
			func() {
				counterpartyChannelID = "channel-10"
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

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			path.BindPorts()

			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			suite.Require().NoError(path.EndpointB.ChanOpenTry())
			suite.Require().NoError(path.EndpointA.UpdateClient())

			channelID = path.EndpointA.ChannelID
			counterpartyVersion = path.EndpointB.ChannelConfig.Version
			counterpartyChannelID = path.EndpointB.ChannelID
			tryProof, proofHeight = path.EndpointB.QueryProof(host.ChannelKey(ibctesting.MockPort, path.EndpointB.ChannelID))

			tc.malleate()

			channelKeeper := suite.chainA.App.GetIBCKeeper().ChannelKeeper
			err := channelKeeper.ChanOpenAck(
				suite.chainA.GetContext(), ibctesting.MockPort, channelID,
				counterpartyVersion, counterpartyChannelID, tryProof, proofHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.INIT, path.EndpointA.GetChannel().State)

			channelKeeper.WriteOpenAckChannel(suite.chainA.GetContext(), ibctesting.MockPort, channelID, counterpartyVersion, counterpartyChannelID)

			channel := path.EndpointA.GetChannel()
			suite.Require().Equal(types.OPEN, channel.State)
			suite.Require().Equal(counterpartyChannelID, channel.Counterparty.ChannelId)
			suite.Require().Equal(counterpartyVersion, channel.Version)
		})
	}
}

// TestChanOpenConfirm tests the OpenConfirm handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenConfirm directly. The handshake
// call is occurring on chainB.
func (suite *KeeperTestSuite) TestChanOpenConfirm() {
	var (
		path        *ibctesting.Path
		channelID   string
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
			"channel does not exist",
			func() {
				channelID = "channel-10"
			},
			types.ErrInvalidChannelState,
		},
		{
			"channel state is not TRYOPEN",
			func() {
				channel := path.EndpointB.GetChannel()
				channel.State = types.OPEN
				path.EndpointB.SetChannel(channel)
			},
			types.ErrInvalidChannelState,
		},
		{
			"connection is not OPEN",
			func() {
				setConnectionState(path.EndpointB, connectiontypes.INIT)
			},
			types.ErrConnectionNotOpen,
		},
		{
			"counterparty channel is not OPEN",
			func() {
				channel := path.EndpointA.GetChannel()
				channel.State = types.INIT
				path.EndpointA.SetChannel(channel)

				suite.coordinator.CommitBlock(suite.chainA)
				suite.Require().NoError(path.EndpointB.UpdateClient())

				ackProof, proofHeight = path.EndpointA.QueryProof(host.ChannelKey(ibctesting.MockPort, path.EndpointA.ChannelID))
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
			path.SetupConnections()
			path.BindPorts()

			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			suite.Require().NoError(path.EndpointB.ChanOpenTry())
			suite.Require().NoError(path.EndpointA.ChanOpenAck())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			channelID = path.EndpointB.ChannelID
			ackProof, proofHeight = path.EndpointA.QueryProof(host.ChannelKey(ibctesting.MockPort, path.EndpointA.ChannelID))

			tc.malleate()

			channelKeeper := suite.chainB.App.GetIBCKeeper().ChannelKeeper
			err := channelKeeper.ChanOpenConfirm(
				suite.chainB.GetContext(), ibctesting.MockPort, channelID, ackProof, proofHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.TRYOPEN, path.EndpointB.GetChannel().State)

			channelKeeper.WriteOpenConfirmChannel(suite.chainB.GetContext(), ibctesting.MockPort, channelID)
			suite.Require().Equal(types.OPEN, path.EndpointB.GetChannel().State)
		})
	}
}
