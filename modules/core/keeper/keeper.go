package keeper

import (
	"errors"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"

	clientkeeper "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/keeper"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectionkeeper "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/keeper"
	channelkeeper "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/keeper"
	portkeeper "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/keeper"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
)

// Keeper defines each ICS keeper for IBC
type Keeper struct {
	ClientKeeper     *clientkeeper.Keeper
	ConnectionKeeper *connectionkeeper.Keeper
	ChannelKeeper    *channelkeeper.Keeper
	PortKeeper       *portkeeper.Keeper

	registry *clienttypes.InterfaceRegistry
	logger   log.Logger
}

// NewKeeper creates a new ibc Keeper
func NewKeeper(storeService corestore.KVStoreService, registry *clienttypes.InterfaceRegistry, logger log.Logger) *Keeper {
	if storeService == nil {
		panic(errors.New("cannot initialize IBC keeper: empty store service"))
	}
	if registry == nil {
		panic(errors.New("cannot initialize IBC keeper: empty interface registry"))
	}

	clientKeeper := clientkeeper.NewKeeper(storeService, registry, logger)
	connectionKeeper := connectionkeeper.NewKeeper(storeService, clientKeeper, logger)
	portKeeper := portkeeper.NewKeeper(storeService, logger)
	channelKeeper := channelkeeper.NewKeeper(storeService, clientKeeper, connectionKeeper, portKeeper, logger)

	return &Keeper{
		ClientKeeper:     clientKeeper,
		ConnectionKeeper: connectionKeeper,
		ChannelKeeper:    channelKeeper,
		PortKeeper:       portKeeper,
		registry:         registry,
		logger:           logger,
	}
}

// InterfaceRegistry returns the registry used to decode light client types.
func (k *Keeper) InterfaceRegistry() *clienttypes.InterfaceRegistry {
	return k.registry
}

// SetRouter sets the Router in IBC Keeper and seals it. The method panics if
// there is an existing router that's already sealed.
func (k *Keeper) SetRouter(rtr *porttypes.Router) {
	if k.PortKeeper.Router != nil && k.PortKeeper.Router.Sealed() {
		panic(errors.New("cannot reset a sealed router"))
	}

	k.PortKeeper.Router = rtr
	k.PortKeeper.Router.Seal()
}
