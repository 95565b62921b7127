package keeper_test

import (
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	ibctesting "github.com/eclipse-ibc/eclipse-ibc-go/testing"
)

// mustMarshal returns the raw encoding of a client or consensus state.
func (suite *KeeperTestSuite) mustMarshal(state interface{ Marshal() ([]byte, error) }) []byte {
	bz, err := state.Marshal()
	suite.Require().NoError(err)
	return bz
}

func (suite *KeeperTestSuite) TestCreateClient() {
	var (
		clientType       string
		clientStateBz    []byte
		consensusStateBz []byte
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
		errMsg   string
	}{
		{
			"success: eclipse client",
			func() {},
			nil,
			"",
		},
		{
			"failure: empty client type",
			func() {
				clientType = ""
			},
			clienttypes.ErrInvalidClientType,
			"",
		},
		{
			"failure: client type not registered",
			func() {
				clientType = "07-tendermint"
			},
			clienttypes.ErrInvalidClientType,
			"",
		},
		{
			"failure: client type is not a valid identifier prefix",
			func() {
				clientType = "xx/eclipse"
			},
			clienttypes.ErrInvalidClientType,
			"",
		},
		{
			"failure: client state frozen at creation",
			func() {
				clientState := eclipse.NewClientState(suite.chainB.ChainID, *suite.chainB.LatestHeader)
				clientState.FrozenHeight = clientState.LatestHeight()
				clientStateBz = suite.mustMarshal(clientState)
			},
			clienttypes.ErrInvalidInitialState,
			"frozen at creation",
		},
		{
			"failure: consensus state does not match the latest header",
			func() {
				consensusStateBz = suite.mustMarshal(eclipse.NewConsensusState([]byte("other root"), suite.chainB.LatestHeader.Timestamp))
			},
			clienttypes.ErrInvalidInitialState,
			"does not match the latest header",
		},
		{
			"failure: client state is not decodable",
			func() {
				clientStateBz = []byte("invalid client state")
			},
			clienttypes.ErrInvalidInitialState,
			"failed to unmarshal client state",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset

			header := suite.chainB.LatestHeader
			clientType = exported.Eclipse
			clientStateBz = suite.mustMarshal(eclipse.NewClientState(suite.chainB.ChainID, *header))
			consensusStateBz = suite.mustMarshal(header.ConsensusState())

			tc.malleate()

			clientKeeper := suite.chainA.App.GetIBCKeeper().ClientKeeper
			clientID, err := clientKeeper.CreateClient(suite.chainA.GetContext(), clientType, clientStateBz, consensusStateBz)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().ErrorContains(err, tc.errMsg)
				suite.Require().Empty(clientID)
				suite.Require().Equal(uint64(0), clientKeeper.GetNextClientSequence(suite.chainA.GetContext()))
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(ibctesting.FirstClientID, clientID)
			suite.Require().Equal(uint64(1), clientKeeper.GetNextClientSequence(suite.chainA.GetContext()))
			suite.Require().Equal(exported.Active, clientKeeper.GetClientStatus(suite.chainA.GetContext(), clientID))
			suite.Require().Equal(header.Height, clientKeeper.GetClientLatestHeight(suite.chainA.GetContext(), clientID))
		})
	}
}

func (suite *KeeperTestSuite) TestUpdateClient() {
	var (
		path     *ibctesting.Path
		clientID string
		header   *eclipse.Header
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
			"invalid client identifier",
			func() {
				clientID = "invalid"
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"client does not exist",
			func() {
				clientID = "xx-eclipse-10"
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"client type not registered",
			func() {
				clientID = "07-tendermint-0"
			},
			clienttypes.ErrRouteNotFound,
		},
		{
			"client is frozen",
			func() {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = clientState.LatestHeight()
				suite.chainA.App.GetIBCKeeper().ClientKeeper.SetClientState(suite.chainA.GetContext(), clientID, clientState)
			},
			clienttypes.ErrClientFrozen,
		},
		{
			"header height is not increasing",
			func() {
				latestHeader := path.EndpointA.GetClientState().LatestHeader
				header = &latestHeader
			},
			clienttypes.ErrHeaderHeightNotIncreasing,
		},
		{
			"conflicting header freezes the client",
			func() {
				latestHeader := path.EndpointA.GetClientState().LatestHeader
				header = eclipse.NewHeader(latestHeader.Height, []byte("forked root"), latestHeader.Timestamp)
			},
			clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			suite.coordinator.CommitBlock(suite.chainB)
			clientID = path.EndpointA.ClientID
			header = suite.chainB.LatestHeader

			tc.malleate()

			clientKeeper := suite.chainA.App.GetIBCKeeper().ClientKeeper
			heights, err := clientKeeper.UpdateClient(suite.chainA.GetContext(), clientID, header)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Nil(heights)

				if tc.msg == "conflicting header freezes the client" {
					suite.Require().Equal(exported.Frozen, clientKeeper.GetClientStatus(suite.chainA.GetContext(), clientID))
				}
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal([]exported.Height{header.Height}, heights)
			suite.Require().Equal(header.Height, clientKeeper.GetClientLatestHeight(suite.chainA.GetContext(), clientID))

			consensusState, found := clientKeeper.GetClientConsensusState(suite.chainA.GetContext(), clientID, header.Height)
			suite.Require().True(found)
			suite.Require().True(header.ConsensusState().Equal(consensusState.(*eclipse.ConsensusState)))
		})
	}
}

func (suite *KeeperTestSuite) TestVerifyNonMembershipStatus() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	clientKeeper := suite.chainA.App.GetIBCKeeper().ClientKeeper
	proofHeight := path.EndpointA.GetClientState().LatestHeight()

	err := clientKeeper.VerifyNonMembership(suite.chainA.GetContext(), "xx-eclipse-10", proofHeight, []byte("proof"), nil)
	suite.Require().ErrorIs(err, clienttypes.ErrClientNotFound)

	err = clientKeeper.VerifyNonMembership(suite.chainA.GetContext(), "07-tendermint-0", proofHeight, []byte("proof"), nil)
	suite.Require().ErrorIs(err, clienttypes.ErrRouteNotFound)

	err = clientKeeper.VerifyMembership(suite.chainA.GetContext(), "07-tendermint-0", proofHeight, []byte("proof"), nil, []byte("value"))
	suite.Require().ErrorIs(err, clienttypes.ErrRouteNotFound)
}
