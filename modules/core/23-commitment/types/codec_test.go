package types_test

import (
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
)

func (suite *MerkleTestSuite) TestMerkleProofCodec() {
	suite.Require().NoError(suite.store.KVStore(storeName).Set([]byte("MYKEY"), []byte("MYVALUE")))
	cid, err := suite.store.Commit()
	suite.Require().NoError(err)

	_, proofs, err := suite.store.ProveKey(storeName, []byte("MYKEY"), cid.Version)
	suite.Require().NoError(err)

	var bz []byte

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
			"success: unknown fields are skipped",
			func() {
				bz = append(bz, 0x10, 0x01)
			},
			nil,
		},
		{
			"empty bytes",
			func() {
				bz = nil
			},
			types.ErrMalformedProof,
		},
		{
			"truncated proof",
			func() {
				bz = bz[:len(bz)-1]
			},
			types.ErrMalformedProof,
		},
		{
			"proofs field with varint wire type",
			func() {
				bz = []byte{0x08, 0x01}
			},
			types.ErrMalformedProof,
		},
		{
			"empty commitment proof",
			func() {
				bz = []byte{0x0a, 0x00}
			},
			types.ErrMalformedProof,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			bz, err = types.MerkleProof{Proofs: proofs}.Marshal()
			suite.Require().NoError(err)

			tc.malleate()

			proof, err := types.NewMerkleProofFromBytes(bz)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Len(proof.Proofs, len(proofs))
				suite.Require().Equal(proofs[0].GetExist().Key, proof.Proofs[0].GetExist().Key)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
