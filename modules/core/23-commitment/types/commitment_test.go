package types_test

import (
	"testing"

	testifysuite "github.com/stretchr/testify/suite"

	"cosmossdk.io/log"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/eclipse-ibc/eclipse-ibc-go/simapp/store"
)

const storeName = "ibc"

type MerkleTestSuite struct {
	testifysuite.Suite

	store *store.CommitMultiStore
}

func (suite *MerkleTestSuite) SetupTest() {
	var err error
	suite.store, err = store.NewCommitMultiStore(dbm.NewMemDB(), log.NewNopLogger(), storeName, "other")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.KVStore("other").Set([]byte("OTHERKEY"), []byte("OTHERVALUE")))
}

func TestMerkleTestSuite(t *testing.T) {
	testifysuite.Run(t, new(MerkleTestSuite))
}
