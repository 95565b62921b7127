package types

import (
	"fmt"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Router is a map from a light client module name to a LightClientModule.
// The light client module name must be the same name as the client type.
type Router struct {
	routes map[string]exported.LightClientModule
}

// NewRouter returns an instance of the Router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]exported.LightClientModule),
	}
}

// AddRoute adds LightClientModule for a given module name. It returns the Router
// so AddRoute calls can be linked. It will panic if the client type is already registered.
func (rtr *Router) AddRoute(clientType string, module exported.LightClientModule) *Router {
	if rtr.HasRoute(clientType) {
		panic(fmt.Errorf("route %s has already been registered", clientType))
	}

	rtr.routes[clientType] = module
	return rtr
}

// HasRoute returns true if the Router has a module registered or false otherwise.
func (rtr *Router) HasRoute(clientType string) bool {
	_, ok := rtr.routes[clientType]
	return ok
}

// GetRoute returns the LightClientModule registered for the client type
// associated with the clientID.
func (rtr *Router) GetRoute(clientID string) (exported.LightClientModule, bool) {
	clientType, _, err := ParseClientIdentifier(clientID)
	if err != nil {
		return nil, false
	}

	if !rtr.HasRoute(clientType) {
		return nil, false
	}
	return rtr.routes[clientType], true
}

// GetRouteByClientType returns the LightClientModule registered for the client type.
func (rtr *Router) GetRouteByClientType(clientType string) (exported.LightClientModule, bool) {
	module, ok := rtr.routes[clientType]
	return module, ok
}
