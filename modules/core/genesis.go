package ibc

import (
	"context"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/keeper"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
)

// InitGenesis initializes the ibc state from a provided genesis
// state.
func InitGenesis(ctx context.Context, k *keeper.Keeper, gs types.GenesisState) {
	k.ClientKeeper.SetNextClientSequence(ctx, gs.NextClientSequence)
	k.ConnectionKeeper.SetNextConnectionSequence(ctx, gs.NextConnectionSequence)
	k.ChannelKeeper.SetNextChannelSequence(ctx, gs.NextChannelSequence)
}

// ExportGenesis returns the ibc exported genesis.
func ExportGenesis(ctx context.Context, k *keeper.Keeper) types.GenesisState {
	return types.GenesisState{
		NextClientSequence:     k.ClientKeeper.GetNextClientSequence(ctx),
		NextConnectionSequence: k.ConnectionKeeper.GetNextConnectionSequence(ctx),
		NextChannelSequence:    k.ChannelKeeper.GetNextChannelSequence(ctx),
	}
}
