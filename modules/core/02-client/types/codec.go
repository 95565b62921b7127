package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// InterfaceRegistry resolves google.protobuf.Any type URLs to the concrete
// client state, consensus state and client message types registered by light
// client modules.
type InterfaceRegistry struct {
	impls map[string]func() exported.Marshaler
}

// NewInterfaceRegistry returns an empty InterfaceRegistry.
func NewInterfaceRegistry() *InterfaceRegistry {
	return &InterfaceRegistry{
		impls: make(map[string]func() exported.Marshaler),
	}
}

// RegisterImplementation registers a constructor for the type with the given type URL.
// It panics if the type URL is already registered.
func (r *InterfaceRegistry) RegisterImplementation(typeURL string, constructor func() exported.Marshaler) {
	if _, ok := r.impls[typeURL]; ok {
		panic(fmt.Errorf("type URL %s has already been registered", typeURL))
	}
	r.impls[typeURL] = constructor
}

// PackAny encodes msg as a google.protobuf.Any.
func PackAny(msg exported.Marshaler) ([]byte, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(ibcerrors.ErrPackAny, "cannot pack nil message")
	}

	bz, err := msg.Marshal()
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrPackAny, "%s: %v", msg.TypeURL(), err)
	}

	anyBz, err := wire.MarshalAny(msg.TypeURL(), bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrPackAny, "%s: %v", msg.TypeURL(), err)
	}
	return anyBz, nil
}

// MustPackAny encodes msg as a google.protobuf.Any, panicking on failure.
func MustPackAny(msg exported.Marshaler) []byte {
	bz, err := PackAny(msg)
	if err != nil {
		panic(err)
	}
	return bz
}

// UnpackAny decodes a google.protobuf.Any into its registered concrete type.
func (r *InterfaceRegistry) UnpackAny(bz []byte) (exported.Marshaler, error) {
	typeURL, value, err := wire.UnmarshalAny(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode Any: %v", err)
	}

	constructor, ok := r.impls[typeURL]
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "no implementation registered for type URL %s", typeURL)
	}

	msg := constructor()
	if err := msg.Unmarshal(value); err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to unmarshal %s: %v", typeURL, err)
	}
	return msg, nil
}

// UnpackClientState unpacks an Any into a ClientState. It returns an error if the
// Any does not hold a registered client state.
func (r *InterfaceRegistry) UnpackClientState(bz []byte) (exported.ClientState, error) {
	msg, err := r.UnpackAny(bz)
	if err != nil {
		return nil, err
	}

	clientState, ok := msg.(exported.ClientState)
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "cannot unpack Any into ClientState %T", msg)
	}
	return clientState, nil
}

// UnpackConsensusState unpacks an Any into a ConsensusState. It returns an error if the
// Any does not hold a registered consensus state.
func (r *InterfaceRegistry) UnpackConsensusState(bz []byte) (exported.ConsensusState, error) {
	msg, err := r.UnpackAny(bz)
	if err != nil {
		return nil, err
	}

	consensusState, ok := msg.(exported.ConsensusState)
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "cannot unpack Any into ConsensusState %T", msg)
	}
	return consensusState, nil
}

// UnpackClientMessage unpacks an Any into a ClientMessage. It returns an error if the
// Any does not hold a registered client message.
func (r *InterfaceRegistry) UnpackClientMessage(bz []byte) (exported.ClientMessage, error) {
	msg, err := r.UnpackAny(bz)
	if err != nil {
		return nil, err
	}

	clientMessage, ok := msg.(exported.ClientMessage)
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "cannot unpack Any into ClientMessage %T", msg)
	}
	return clientMessage, nil
}
