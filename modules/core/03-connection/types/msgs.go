package types

import (
	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
)

// MsgConnectionOpenInit defines the msg sent by an account on Chain A to
// initialize a connection with Chain B.
type MsgConnectionOpenInit struct {
	ClientId     string       `json:"client_id"` //nolint:revive
	Counterparty Counterparty `json:"counterparty"`
	Version      *Version     `json:"version,omitempty"`
	DelayPeriod  uint64       `json:"delay_period"`
}

// MsgConnectionOpenInitResponse defines the Msg/ConnectionOpenInit response type.
type MsgConnectionOpenInitResponse struct {
	ConnectionId string `json:"connection_id"` //nolint:revive
}

// NewMsgConnectionOpenInit creates a new MsgConnectionOpenInit instance. It sets the
// counterparty connection identifier to be empty.
func NewMsgConnectionOpenInit(
	clientID, counterpartyClientID string,
	counterpartyPrefix commitmenttypes.MerklePrefix,
	version *Version, delayPeriod uint64,
) *MsgConnectionOpenInit {
	// counterparty must have the same delay period
	counterparty := NewCounterparty(counterpartyClientID, "", counterpartyPrefix)
	return &MsgConnectionOpenInit{
		ClientId:     clientID,
		Counterparty: counterparty,
		Version:      version,
		DelayPeriod:  delayPeriod,
	}
}

// ValidateBasic performs stateless checks of the message.
func (msg MsgConnectionOpenInit) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid client ID")
	}
	if msg.Counterparty.ConnectionId != "" {
		return errorsmod.Wrap(ErrInvalidCounterparty, "counterparty connection identifier must be empty")
	}

	// NOTE: Version can be nil on MsgConnectionOpenInit
	if msg.Version != nil {
		if err := ValidateVersion(msg.Version); err != nil {
			return errorsmod.Wrap(err, "basic validation of the provided version failed")
		}
	}
	return msg.Counterparty.ValidateBasic()
}

// MsgConnectionOpenTry defines a msg sent by a Relayer to try to open a
// connection on Chain B.
type MsgConnectionOpenTry struct {
	ClientId             string             `json:"client_id"` //nolint:revive
	Counterparty         Counterparty       `json:"counterparty"`
	DelayPeriod          uint64             `json:"delay_period"`
	CounterpartyVersions []*Version         `json:"counterparty_versions"`
	ProofHeight          clienttypes.Height `json:"proof_height"`
	// proof of the initialization the connection on Chain A: `UNINITIALIZED ->
	// INIT`
	ProofInit []byte `json:"proof_init"`
}

// MsgConnectionOpenTryResponse defines the Msg/ConnectionOpenTry response type.
type MsgConnectionOpenTryResponse struct {
	ConnectionId string `json:"connection_id"` //nolint:revive
}

// NewMsgConnectionOpenTry creates a new MsgConnectionOpenTry instance
func NewMsgConnectionOpenTry(
	clientID, counterpartyConnectionID, counterpartyClientID string,
	counterpartyPrefix commitmenttypes.MerklePrefix,
	counterpartyVersions []*Version, delayPeriod uint64,
	initProof []byte, proofHeight clienttypes.Height,
) *MsgConnectionOpenTry {
	counterparty := NewCounterparty(counterpartyClientID, counterpartyConnectionID, counterpartyPrefix)
	return &MsgConnectionOpenTry{
		ClientId:             clientID,
		Counterparty:         counterparty,
		CounterpartyVersions: counterpartyVersions,
		DelayPeriod:          delayPeriod,
		ProofInit:            initProof,
		ProofHeight:          proofHeight,
	}
}

// ValidateBasic performs stateless checks of the message.
func (msg MsgConnectionOpenTry) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid client ID")
	}
	// counterparty validate basic allows empty counterparty connection identifiers
	if err := host.ConnectionIdentifierValidator(msg.Counterparty.ConnectionId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty connection ID")
	}
	if len(msg.CounterpartyVersions) == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidVersion, "empty counterparty versions")
	}
	for i, version := range msg.CounterpartyVersions {
		if err := ValidateVersion(version); err != nil {
			return errorsmod.Wrapf(err, "basic validation failed on version with index %d", i)
		}
	}
	if len(msg.ProofInit) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrMalformedProof, "cannot submit an empty proof init")
	}
	if msg.ProofHeight.IsZero() {
		return errorsmod.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return msg.Counterparty.ValidateBasic()
}

// MsgConnectionOpenAck defines a msg sent by a Relayer to Chain A to
// acknowledge the change of connection state to TRYOPEN on Chain B.
type MsgConnectionOpenAck struct {
	ConnectionId             string             `json:"connection_id"`              //nolint:revive
	CounterpartyConnectionId string             `json:"counterparty_connection_id"` //nolint:revive
	Version                  *Version           `json:"version"`
	ProofHeight              clienttypes.Height `json:"proof_height"`
	// proof of the initialization the connection on Chain B: `UNINITIALIZED ->
	// TRYOPEN`
	ProofTry []byte `json:"proof_try"`
}

// MsgConnectionOpenAckResponse defines the Msg/ConnectionOpenAck response type.
type MsgConnectionOpenAckResponse struct{}

// NewMsgConnectionOpenAck creates a new MsgConnectionOpenAck instance
func NewMsgConnectionOpenAck(
	connectionID, counterpartyConnectionID string,
	tryProof []byte, proofHeight clienttypes.Height,
	version *Version,
) *MsgConnectionOpenAck {
	return &MsgConnectionOpenAck{
		ConnectionId:             connectionID,
		CounterpartyConnectionId: counterpartyConnectionID,
		ProofTry:                 tryProof,
		ProofHeight:              proofHeight,
		Version:                  version,
	}
}

// ValidateBasic performs stateless checks of the message.
func (msg MsgConnectionOpenAck) ValidateBasic() error {
	if !IsValidConnectionID(msg.ConnectionId) {
		return ErrInvalidConnectionIdentifier
	}
	if err := host.ConnectionIdentifierValidator(msg.CounterpartyConnectionId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty connection ID")
	}
	if err := ValidateVersion(msg.Version); err != nil {
		return err
	}
	if len(msg.ProofTry) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrMalformedProof, "cannot submit an empty proof try")
	}
	if msg.ProofHeight.IsZero() {
		return errorsmod.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return nil
}

// MsgConnectionOpenConfirm defines a msg sent by a Relayer to Chain B to
// acknowledge the change of connection state to OPEN on Chain A.
type MsgConnectionOpenConfirm struct {
	ConnectionId string             `json:"connection_id"` //nolint:revive
	ProofHeight  clienttypes.Height `json:"proof_height"`
	// proof for the change of the connection state on Chain A: `INIT -> OPEN`
	ProofAck []byte `json:"proof_ack"`
}

// MsgConnectionOpenConfirmResponse defines the Msg/ConnectionOpenConfirm response type.
type MsgConnectionOpenConfirmResponse struct{}

// NewMsgConnectionOpenConfirm creates a new MsgConnectionOpenConfirm instance
func NewMsgConnectionOpenConfirm(connectionID string, ackProof []byte, proofHeight clienttypes.Height) *MsgConnectionOpenConfirm {
	return &MsgConnectionOpenConfirm{
		ConnectionId: connectionID,
		ProofAck:     ackProof,
		ProofHeight:  proofHeight,
	}
}

// ValidateBasic performs stateless checks of the message.
func (msg MsgConnectionOpenConfirm) ValidateBasic() error {
	if !IsValidConnectionID(msg.ConnectionId) {
		return ErrInvalidConnectionIdentifier
	}
	if len(msg.ProofAck) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrMalformedProof, "cannot submit an empty proof ack")
	}
	if msg.ProofHeight.IsZero() {
		return errorsmod.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return nil
}
