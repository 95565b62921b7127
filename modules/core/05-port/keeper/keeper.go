package keeper

import (
	"context"

	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Keeper defines the IBC port keeper
type Keeper struct {
	Router *types.Router

	storeService corestore.KVStoreService
	logger       log.Logger
}

// NewKeeper creates a new IBC port Keeper instance
func NewKeeper(storeService corestore.KVStoreService, logger log.Logger) *Keeper {
	return &Keeper{
		Router:       types.NewRouter(),
		storeService: storeService,
		logger:       logger.With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// BindPort binds to a port and records the name of the module owning it. The
// owning module must have registered its callbacks on the router.
func (k *Keeper) BindPort(ctx context.Context, portID, module string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidPort, "%s: %v", portID, err)
	}

	if !k.Router.HasRoute(module) {
		return errorsmod.Wrapf(types.ErrInvalidRoute, "no callbacks registered for module %s", module)
	}

	if owner, found := k.LookupModuleByPort(ctx, portID); found {
		return errorsmod.Wrapf(types.ErrPortExists, "port %s is already bound to module %s", portID, owner)
	}

	store := k.storeService.OpenKVStore(ctx)
	if err := store.Set(host.PortKey(portID), []byte(module)); err != nil {
		panic(err)
	}

	k.Logger().Info("port bound", "port-id", portID, "module", module)
	return nil
}

// ReleasePort unbinds a port. Only the module owning the port may release it.
// Channel ends opened on the port are left in place.
func (k *Keeper) ReleasePort(ctx context.Context, portID, module string) error {
	owner, found := k.LookupModuleByPort(ctx, portID)
	if !found {
		return errorsmod.Wrapf(types.ErrPortNotBound, "port %s", portID)
	}

	if owner != module {
		return errorsmod.Wrapf(types.ErrPortNotOwned, "port %s is owned by module %s, not %s", portID, owner, module)
	}

	store := k.storeService.OpenKVStore(ctx)
	if err := store.Delete(host.PortKey(portID)); err != nil {
		panic(err)
	}

	k.Logger().Info("port released", "port-id", portID, "module", module)
	return nil
}

// IsBound checks a given port ID is already bound.
func (k *Keeper) IsBound(ctx context.Context, portID string) bool {
	_, found := k.LookupModuleByPort(ctx, portID)
	return found
}

// LookupModuleByPort returns the name of the module owning the given port.
func (k *Keeper) LookupModuleByPort(ctx context.Context, portID string) (string, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(host.PortKey(portID))
	if err != nil {
		panic(err)
	}

	if len(bz) == 0 {
		return "", false
	}

	return string(bz), true
}

// Route returns the callbacks of the module owning the given port. It fails with
// ErrPortNotBound if no module has bound the port.
func (k *Keeper) Route(ctx context.Context, portID string) (types.IBCModule, error) {
	module, found := k.LookupModuleByPort(ctx, portID)
	if !found {
		return nil, errorsmod.Wrapf(types.ErrPortNotBound, "port %s", portID)
	}

	cbs, ok := k.Router.GetRoute(module)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrInvalidRoute, "route not found to module %s for port %s", module, portID)
	}

	return cbs, nil
}
