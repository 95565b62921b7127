package eclipse_test

import (
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	ibctesting "github.com/eclipse-ibc/eclipse-ibc-go/testing"
)

const missingClientID = "xx-eclipse-100"

func (suite *EclipseTestSuite) TestStatus() {
	var (
		path     *ibctesting.Path
		clientID string
	)

	testCases := []struct {
		name      string
		malleate  func()
		expStatus exported.Status
	}{
		{
			"client is active",
			func() {},
			exported.Active,
		},
		{
			"client is frozen",
			func() {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = clientState.LatestHeight()
				path.EndpointA.Chain.App.GetIBCKeeper().ClientKeeper.SetClientState(path.EndpointA.Chain.GetContext(), clientID, clientState)
			},
			exported.Frozen,
		},
		{
			"client state not found",
			func() {
				clientID = missingClientID
			},
			exported.Unknown,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			clientID = path.EndpointA.ClientID

			tc.malleate()

			status := suite.lightClientModule(clientID).Status(suite.chainA.GetContext(), clientID)
			suite.Require().Equal(tc.expStatus, status)
		})
	}
}

func (suite *EclipseTestSuite) TestLatestHeight() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	suite.Require().NoError(path.EndpointA.UpdateClient())

	lightClientModule := suite.lightClientModule(path.EndpointA.ClientID)
	latestHeight := lightClientModule.LatestHeight(suite.chainA.GetContext(), path.EndpointA.ClientID)
	suite.Require().Equal(suite.chainB.LatestHeight(), latestHeight)

	latestHeight = lightClientModule.LatestHeight(suite.chainA.GetContext(), missingClientID)
	suite.Require().Equal(clienttypes.ZeroHeight(), latestHeight)
}

func (suite *EclipseTestSuite) TestTimestampAtHeight() {
	var (
		path     *ibctesting.Path
		clientID string
		height   exported.Height
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
			"failure: client state not found",
			func() {
				clientID = missingClientID
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"failure: consensus state not found for height",
			func() {
				height = height.Increment()
			},
			clienttypes.ErrConsensusStateNotFound,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			clientID = path.EndpointA.ClientID

			latestHeader := path.EndpointA.GetClientState().LatestHeader
			height = latestHeader.Height

			tc.malleate()

			timestamp, err := suite.lightClientModule(clientID).TimestampAtHeight(suite.chainA.GetContext(), clientID, height)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(uint64(latestHeader.Timestamp.UnixNano()), timestamp)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Zero(timestamp)
			}
		})
	}
}

func (suite *EclipseTestSuite) TestConsensusMetadata() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	suite.Require().NoError(path.EndpointA.UpdateClient())

	clientStore := suite.chainA.App.GetIBCKeeper().ClientKeeper.GetStoreProvider().ClientStore(suite.chainA.GetContext(), path.EndpointA.ClientID)
	trustedHeight := path.EndpointA.GetClientState().LatestHeight()

	// the update was executed in chainA's latest block
	processedTime, found := eclipse.GetProcessedTime(clientStore, trustedHeight)
	suite.Require().True(found)
	suite.Require().Equal(uint64(suite.chainA.LatestHeader.Timestamp.UnixNano()), processedTime)

	processedHeight, found := eclipse.GetProcessedHeight(clientStore, trustedHeight)
	suite.Require().True(found)
	suite.Require().Equal(suite.chainA.LatestHeight(), processedHeight)

	_, found = eclipse.GetProcessedTime(clientStore, trustedHeight.Increment())
	suite.Require().False(found)

	_, found = eclipse.GetProcessedHeight(clientStore, trustedHeight.Increment())
	suite.Require().False(found)
}

func (suite *EclipseTestSuite) TestVerifyMembership() {
	var (
		path        *ibctesting.Path
		clientID    string
		proof       []byte
		proofHeight exported.Height
		merklePath  exported.Path
		value       []byte
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success: connection state",
			func() {},
			nil,
		},
		{
			"failure: value does not match the committed value",
			func() {
				value = []byte("invalid connection end")
			},
			commitmenttypes.ErrRootMismatch,
		},
		{
			"failure: proof is for another key",
			func() {
				merklePath = commitmenttypes.NewMerklePath([]byte(exported.StoreKey), host.ConnectionKey("connection-1"))
			},
			commitmenttypes.ErrKeyMismatch,
		},
		{
			"failure: path is not prefixed with the store key",
			func() {
				merklePath = commitmenttypes.NewMerklePath(host.ConnectionKey(path.EndpointB.ConnectionID))
			},
			commitmenttypes.ErrInvalidMerklePath,
		},
		{
			"failure: empty value",
			func() {
				value = nil
			},
			commitmenttypes.ErrMalformedProof,
		},
		{
			"failure: proof cannot be decoded",
			func() {
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrMalformedProof,
		},
		{
			"failure: proof height is greater than the client latest height",
			func() {
				proofHeight = proofHeight.Increment()
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"failure: no consensus state at proof height",
			func() {
				proofHeight, _ = proofHeight.Decrement()
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"failure: client is frozen",
			func() {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = clientState.LatestHeight()
				path.EndpointA.Chain.App.GetIBCKeeper().ClientKeeper.SetClientState(path.EndpointA.Chain.GetContext(), clientID, clientState)
			},
			clienttypes.ErrClientFrozen,
		},
		{
			"failure: client state not found",
			func() {
				clientID = missingClientID
			},
			clienttypes.ErrClientNotFound,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			clientID = path.EndpointA.ClientID

			// chainA's client was last updated to chainB's latest header
			key := host.ConnectionKey(path.EndpointB.ConnectionID)
			proof, proofHeight = path.EndpointB.QueryProof(key)
			merklePath = commitmenttypes.NewMerklePath([]byte(exported.StoreKey), key)
			value = path.EndpointB.GetConnection().Marshal()

			tc.malleate()

			err := suite.lightClientModule(clientID).VerifyMembership(suite.chainA.GetContext(), clientID, proofHeight, proof, merklePath, value)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *EclipseTestSuite) TestVerifyNonMembership() {
	var (
		path        *ibctesting.Path
		clientID    string
		proof       []byte
		proofHeight exported.Height
		merklePath  exported.Path
	)

	absentKey := host.ConnectionKey("connection-10")

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success: absent connection",
			func() {},
			nil,
		},
		{
			"failure: key is present",
			func() {
				key := host.ConnectionKey(path.EndpointB.ConnectionID)
				proof, proofHeight = path.EndpointB.QueryProof(key)
				merklePath = commitmenttypes.NewMerklePath([]byte(exported.StoreKey), key)
			},
			commitmenttypes.ErrMalformedProof,
		},
		{
			"failure: proof is for another key",
			func() {
				merklePath = commitmenttypes.NewMerklePath([]byte(exported.StoreKey), host.ConnectionKey("connection-11"))
			},
			commitmenttypes.ErrKeyMismatch,
		},
		{
			"failure: proof height is greater than the client latest height",
			func() {
				proofHeight = proofHeight.Increment()
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"failure: client is frozen",
			func() {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = clientState.LatestHeight()
				path.EndpointA.Chain.App.GetIBCKeeper().ClientKeeper.SetClientState(path.EndpointA.Chain.GetContext(), clientID, clientState)
			},
			clienttypes.ErrClientFrozen,
		},
		{
			"failure: client state not found",
			func() {
				clientID = missingClientID
			},
			clienttypes.ErrClientNotFound,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			clientID = path.EndpointA.ClientID

			proof, proofHeight = path.EndpointB.QueryProof(absentKey)
			merklePath = commitmenttypes.NewMerklePath([]byte(exported.StoreKey), absentKey)

			tc.malleate()

			err := suite.lightClientModule(clientID).VerifyNonMembership(suite.chainA.GetContext(), clientID, proofHeight, proof, merklePath)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
