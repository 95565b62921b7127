package eclipse_test

import (
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
)

func (suite *EclipseTestSuite) TestValidate() {
	testCases := []struct {
		name        string
		clientState *eclipse.ClientState
		expErr      error
	}{
		{
			name:        "valid client",
			clientState: eclipse.NewClientState(chainID, *newHeader()),
			expErr:      nil,
		},
		{
			name:        "invalid chainID",
			clientState: eclipse.NewClientState("  ", *newHeader()),
			expErr:      eclipse.ErrInvalidChainID,
		},
		{
			name:        "invalid zero height",
			clientState: eclipse.NewClientState(chainID, *eclipse.NewHeader(clienttypes.ZeroHeight(), root, timestamp)),
			expErr:      clienttypes.ErrInvalidHeader,
		},
		{
			name:        "invalid empty root",
			clientState: eclipse.NewClientState(chainID, *eclipse.NewHeader(height, nil, timestamp)),
			expErr:      eclipse.ErrInvalidRoot,
		},
		{
			name:        "invalid non-positive timestamp",
			clientState: eclipse.NewClientState(chainID, *eclipse.NewHeader(height, root, timestamp.AddDate(-100, 0, 0))),
			expErr:      eclipse.ErrInvalidTimestamp,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.clientState.Validate()

			if tc.expErr == nil {
				suite.Require().NoError(err, tc.name)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *EclipseTestSuite) TestClientStateCodec() {
	clientState := eclipse.NewClientState(chainID, *newHeader())
	clientState.FrozenHeight = clienttypes.NewHeight(0, 2)

	bz, err := clientState.Marshal()
	suite.Require().NoError(err)

	var decoded eclipse.ClientState
	suite.Require().NoError(decoded.Unmarshal(bz))
	suite.Require().Equal(clientState.ChainId, decoded.ChainId)
	suite.Require().Equal(clientState.FrozenHeight, decoded.FrozenHeight)
	suite.Require().True(clientState.LatestHeader.ConsensusState().Equal(decoded.LatestHeader.ConsensusState()))
	suite.Require().Equal(exported.Eclipse, decoded.ClientType())

	// an active client carries no frozen height on the wire
	clientState.FrozenHeight = clienttypes.ZeroHeight()
	bz, err = clientState.Marshal()
	suite.Require().NoError(err)
	suite.Require().NoError(decoded.Unmarshal(bz))
	suite.Require().False(decoded.IsFrozen())

	suite.Require().ErrorIs(decoded.Unmarshal([]byte{0x0a, 0x05}), ibcerrors.ErrEncoding)
}

func (suite *EclipseTestSuite) TestInitialize() {
	var (
		clientStateBz    []byte
		consensusStateBz []byte
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
			"invalid client state bytes",
			func() {
				clientStateBz = []byte("invalid")
			},
			ibcerrors.ErrUnpackAny,
		},
		{
			"invalid client state",
			func() {
				clientStateBz = clienttypes.MustPackAny(eclipse.NewClientState("", *newHeader()))
			},
			clienttypes.ErrInvalidInitialState,
		},
		{
			"frozen client state",
			func() {
				clientState := eclipse.NewClientState(chainID, *newHeader())
				clientState.FrozenHeight = height
				clientStateBz = clienttypes.MustPackAny(clientState)
			},
			clienttypes.ErrInvalidInitialState,
		},
		{
			"invalid consensus state bytes",
			func() {
				consensusStateBz = []byte("invalid")
			},
			ibcerrors.ErrUnpackAny,
		},
		{
			"consensus state packed as client state",
			func() {
				clientStateBz = consensusStateBz
			},
			ibcerrors.ErrInvalidType,
		},
		{
			"consensus state does not match the latest header",
			func() {
				consensusStateBz = clienttypes.MustPackAny(eclipse.NewConsensusState([]byte("other root"), timestamp))
			},
			clienttypes.ErrInvalidInitialState,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			header := newHeader()
			clientStateBz = clienttypes.MustPackAny(eclipse.NewClientState(chainID, *header))
			consensusStateBz = clienttypes.MustPackAny(header.ConsensusState())

			tc.malleate()

			_, err := suite.chainA.SendMsg(clienttypes.NewMsgCreateClient(clientStateBz, consensusStateBz))

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientID := clienttypes.FormatClientIdentifier(exported.Eclipse, 0)
				suite.Require().Equal(exported.Active, suite.lightClientModule(clientID).Status(suite.chainA.GetContext(), clientID))

				consensusState, found := suite.chainA.GetConsensusState(clientID, height)
				suite.Require().True(found)
				suite.Require().True(header.ConsensusState().Equal(consensusState.(*eclipse.ConsensusState)))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
