package eclipse_test

import (
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	ibctesting "github.com/eclipse-ibc/eclipse-ibc-go/testing"
)

func (suite *EclipseTestSuite) TestUpdateClient() {
	var (
		path   *ibctesting.Path
		header *eclipse.Header
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success: skips heights",
			func() {
				suite.coordinator.CommitNBlocks(suite.chainB, 3)
				header = suite.chainB.LatestHeader
			},
			nil,
		},
		{
			"header at the latest height",
			func() {
				latestHeader := path.EndpointA.GetClientState().LatestHeader
				header = &latestHeader
			},
			clienttypes.ErrHeaderHeightNotIncreasing,
		},
		{
			"header below the latest height without a consensus state",
			func() {
				trustedHeight := path.EndpointA.GetClientState().LatestHeight()
				suite.coordinator.CommitNBlocks(suite.chainB, 2)
				suite.Require().NoError(path.EndpointA.UpdateClient())

				var found bool
				header, found = suite.chainB.App.GetHeader(int64(trustedHeight.RevisionHeight) + 1)
				suite.Require().True(found)
			},
			clienttypes.ErrHeaderHeightNotIncreasing,
		},
		{
			"revision mismatch",
			func() {
				header.Height = clienttypes.NewHeight(1, header.Height.RevisionHeight)
			},
			clienttypes.ErrRevisionMismatch,
		},
		{
			"empty commitment root",
			func() {
				header.CommitmentRoot = nil
			},
			eclipse.ErrInvalidRoot,
		},
		{
			"zero timestamp",
			func() {
				header.Timestamp = header.Timestamp.AddDate(-100, 0, 0)
			},
			eclipse.ErrInvalidTimestamp,
		},
		{
			"client not found",
			func() {
				path.EndpointA.ClientID = clienttypes.FormatClientIdentifier(exported.Eclipse, 10)
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"client is frozen",
			func() {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = clientState.LatestHeight()
				path.EndpointA.Chain.App.GetIBCKeeper().ClientKeeper.SetClientState(path.EndpointA.Chain.GetContext(), path.EndpointA.ClientID, clientState)
			},
			clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			suite.coordinator.CommitBlock(suite.chainB)
			latestHeader := *suite.chainB.LatestHeader
			header = &latestHeader

			tc.malleate()

			err := path.EndpointA.UpdateClientWithHeader(header)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState := path.EndpointA.GetClientState()
				suite.Require().Equal(header.Height, clientState.LatestHeight())
				suite.Require().False(clientState.IsFrozen())

				consensusState, found := suite.chainA.GetConsensusState(path.EndpointA.ClientID, header.Height)
				suite.Require().True(found)
				suite.Require().True(header.ConsensusState().Equal(consensusState.(*eclipse.ConsensusState)))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *EclipseTestSuite) TestMisbehaviourFreezesClient() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	suite.Require().NoError(path.EndpointA.UpdateClient())
	trusted := path.EndpointA.GetClientState().LatestHeader

	// a second header for an already trusted height, committing to another root
	conflicting := eclipse.NewHeader(trusted.Height, []byte("forked root"), trusted.Timestamp)

	err := path.EndpointA.UpdateClientWithHeader(conflicting)
	suite.Require().ErrorIs(err, clienttypes.ErrClientFrozen)

	// the freeze is committed even though the update failed
	clientState := path.EndpointA.GetClientState()
	suite.Require().True(clientState.IsFrozen())
	suite.Require().Equal(trusted.Height, clientState.FrozenHeight)
	suite.Require().Equal(trusted.Height, clientState.LatestHeight())
	suite.Require().Equal(int64(suite.chainA.LatestHeader.Height.RevisionHeight), suite.chainA.App.LastCommitID().Version, "the freeze must be committed in a block")

	status := suite.lightClientModule(path.EndpointA.ClientID).Status(suite.chainA.GetContext(), path.EndpointA.ClientID)
	suite.Require().Equal(exported.Frozen, status)

	// the stored consensus state is untouched
	consensusState, found := suite.chainA.GetConsensusState(path.EndpointA.ClientID, trusted.Height)
	suite.Require().True(found)
	suite.Require().True(trusted.ConsensusState().Equal(consensusState.(*eclipse.ConsensusState)))

	// frozen clients accept no further updates
	err = path.EndpointA.UpdateClient()
	suite.Require().ErrorIs(err, clienttypes.ErrClientFrozen)
}

func (suite *EclipseTestSuite) TestSameHeaderIsNotMisbehaviour() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	suite.Require().NoError(path.EndpointA.UpdateClient())
	trusted := path.EndpointA.GetClientState().LatestHeader

	err := path.EndpointA.UpdateClientWithHeader(&trusted)
	suite.Require().ErrorIs(err, clienttypes.ErrHeaderHeightNotIncreasing)
	suite.Require().False(path.EndpointA.GetClientState().IsFrozen())
}
