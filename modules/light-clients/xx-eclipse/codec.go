package eclipse

import (
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

const (
	// ModuleName is the name of the eclipse light client module.
	ModuleName = exported.Eclipse

	ClientStateTypeURL    = "/eclipse.ibc.v1.chain.ClientState"
	ConsensusStateTypeURL = "/eclipse.ibc.v1.chain.ConsensusState"
	HeaderTypeURL         = "/eclipse.ibc.v1.chain.Header"
)

// RegisterInterfaces registers the eclipse client state, consensus state and
// header implementations with the registry used to unpack Any values.
func RegisterInterfaces(registry *clienttypes.InterfaceRegistry) {
	registry.RegisterImplementation(ClientStateTypeURL, func() exported.Marshaler { return &ClientState{} })
	registry.RegisterImplementation(ConsensusStateTypeURL, func() exported.Marshaler { return &ConsensusState{} })
	registry.RegisterImplementation(HeaderTypeURL, func() exported.Marshaler { return &Header{} })
}
