package types

import (
	"fmt"
	"regexp"
)

var moduleNameRegexp = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Router maps application module names to their IBCModule callbacks. Routes
// are registered while the app is wired up; after Seal the table is fixed.
// Registration mistakes are wiring bugs and panic.
type Router struct {
	routes map[string]IBCModule
	sealed bool
}

func NewRouter() *Router {
	return &Router{routes: map[string]IBCModule{}}
}

// AddRoute registers cbs under module and returns the router for chaining.
func (rtr *Router) AddRoute(module string, cbs IBCModule) *Router {
	switch {
	case rtr.sealed:
		panic(fmt.Sprintf("cannot add route %q: router is sealed", module))
	case !moduleNameRegexp.MatchString(module):
		panic(fmt.Sprintf("cannot add route %q: module name must be alphanumeric", module))
	case rtr.HasRoute(module):
		panic(fmt.Sprintf("cannot add route %q: already registered", module))
	}

	rtr.routes[module] = cbs
	return rtr
}

func (rtr *Router) HasRoute(module string) bool {
	_, ok := rtr.routes[module]
	return ok
}

func (rtr *Router) GetRoute(module string) (IBCModule, bool) {
	cbs, ok := rtr.routes[module]
	return cbs, ok
}

// Seal freezes the route table. Sealing twice panics.
func (rtr *Router) Seal() {
	if rtr.sealed {
		panic("router already sealed")
	}
	rtr.sealed = true
}

func (rtr *Router) Sealed() bool {
	return rtr.sealed
}
