package types

import (
	errorsmod "cosmossdk.io/errors"

	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
)

// MsgCreateClient defines a message to create an IBC client. The client and
// consensus states are google.protobuf.Any encodings of the light client types.
type MsgCreateClient struct {
	ClientState    []byte `json:"client_state"`
	ConsensusState []byte `json:"consensus_state"`
}

// MsgCreateClientResponse defines the MsgCreateClient response type.
type MsgCreateClientResponse struct {
	ClientId string `json:"client_id"`
}

// MsgUpdateClient defines a message to update an IBC client with a
// google.protobuf.Any encoded client message.
type MsgUpdateClient struct {
	ClientId      string `json:"client_id"`
	ClientMessage []byte `json:"client_message"`
}

// MsgUpdateClientResponse defines the MsgUpdateClient response type.
type MsgUpdateClientResponse struct {
	ConsensusHeights []Height `json:"consensus_heights"`
}

// NewMsgCreateClient creates a new MsgCreateClient instance
func NewMsgCreateClient(clientState, consensusState []byte) *MsgCreateClient {
	return &MsgCreateClient{
		ClientState:    clientState,
		ConsensusState: consensusState,
	}
}

// ValidateBasic implements the basic message validation
func (msg MsgCreateClient) ValidateBasic() error {
	if len(msg.ClientState) == 0 {
		return errorsmod.Wrap(ErrInvalidClient, "client state cannot be empty")
	}
	if len(msg.ConsensusState) == 0 {
		return errorsmod.Wrap(ErrInvalidConsensus, "consensus state cannot be empty")
	}
	return nil
}

// NewMsgUpdateClient creates a new MsgUpdateClient instance
func NewMsgUpdateClient(clientID string, clientMsg []byte) *MsgUpdateClient {
	return &MsgUpdateClient{
		ClientId:      clientID,
		ClientMessage: clientMsg,
	}
}

// ValidateBasic implements the basic message validation
func (msg MsgUpdateClient) ValidateBasic() error {
	if len(msg.ClientMessage) == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidRequest, "client message cannot be empty")
	}
	return host.ClientIdentifierValidator(msg.ClientId)
}
