package exported

import (
	"context"

	corestore "cosmossdk.io/core/store"
)

// Status represents the status of a client
type Status string

const (
	// ModuleName is the name of the IBC module
	ModuleName = "ibc"

	// StoreKey is the name of the IBC substore in the host commitment tree.
	StoreKey = ModuleName

	// Eclipse is the client type of the light client tracking an eclipse chain.
	Eclipse string = "xx-eclipse"

	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"

	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"

	// Unknown indicates there was an error in determining the status of a client.
	Unknown Status = "Unknown"
)

// LightClientModule is an interface which core IBC uses to interact with light client modules.
// Light client modules must implement this interface to integrate with core IBC.
type LightClientModule interface {
	// Initialize is called upon client creation, it allows the client to perform validation on the client state and initial consensus state.
	// The light client module is responsible for setting any client-specific data in the store. This includes the client state,
	// initial consensus state and any associated metadata.
	Initialize(ctx context.Context, clientID string, clientState, consensusState []byte) error

	// VerifyClientMessage must verify a ClientMessage. An error should be returned
	// if the ClientMessage fails to verify.
	VerifyClientMessage(ctx context.Context, clientID string, clientMsg ClientMessage) error

	// CheckForMisbehaviour checks for evidence of a misbehaviour in the ClientMessage. It assumes the ClientMessage
	// has already been verified.
	CheckForMisbehaviour(ctx context.Context, clientID string, clientMsg ClientMessage) bool

	// UpdateStateOnMisbehaviour should perform appropriate state changes on a client state given that misbehaviour has been detected and verified
	UpdateStateOnMisbehaviour(ctx context.Context, clientID string, clientMsg ClientMessage)

	// UpdateState updates and stores as necessary any associated information for an IBC client, such as the ClientState and corresponding ConsensusState.
	// Upon successful update, a list of consensus heights is returned. An error is returned if the message
	// would move the client backwards.
	UpdateState(ctx context.Context, clientID string, clientMsg ClientMessage) ([]Height, error)

	// VerifyMembership is a generic proof verification method which verifies a proof of the existence of a value at a given CommitmentPath at the specified height.
	// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
	VerifyMembership(
		ctx context.Context,
		clientID string,
		height Height,
		proof []byte,
		path Path,
		value []byte,
	) error

	// VerifyNonMembership is a generic proof verification method which verifies the absence of a given CommitmentPath at a specified height.
	// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
	VerifyNonMembership(
		ctx context.Context,
		clientID string,
		height Height,
		proof []byte,
		path Path,
	) error

	// Status must return the status of the client. Only Active clients are allowed to process packets.
	Status(ctx context.Context, clientID string) Status

	// LatestHeight returns the latest height of the client. If no client is present for the provided client identifier a zero value height may be returned.
	LatestHeight(ctx context.Context, clientID string) Height

	// TimestampAtHeight must return the timestamp for the consensus state associated with the provided height.
	TimestampAtHeight(
		ctx context.Context,
		clientID string,
		height Height,
	) (uint64, error)
}

// ClientStoreProvider defines an interface for getting a prefixed store
// isolated to a single client.
type ClientStoreProvider interface {
	// ClientStore returns the store under the "clients/{clientID}/" prefix.
	ClientStore(ctx context.Context, clientID string) corestore.KVStore
}

// ClientState defines the required common functions for light clients.
type ClientState interface {
	Marshaler

	ClientType() string
	Validate() error
}

// ConsensusState is the state of the consensus process
type ConsensusState interface {
	Marshaler

	ClientType() string

	// GetRoot returns the commitment root of the consensus state,
	// which is used for key-value pair verification.
	GetRoot() Root

	// GetTimestamp returns the timestamp (in nanoseconds) of the consensus state
	GetTimestamp() uint64

	ValidateBasic() error
}

// ClientMessage is an interface used to update an IBC client.
// The update may be done by a single header or a batch of headers.
type ClientMessage interface {
	Marshaler

	ClientType() string
	ValidateBasic() error
}

// Marshaler is implemented by every type persisted in the IBC store or carried
// inside a google.protobuf.Any. Implementations produce protobuf wire bytes.
type Marshaler interface {
	Marshal() ([]byte, error)
	Unmarshal(bz []byte) error
	// TypeURL returns the google.protobuf.Any type URL of the message.
	TypeURL() string
}

// Height is a wrapper interface over clienttypes.Height
// all clients must use the concrete implementation in types
type Height interface {
	IsZero() bool
	LT(Height) bool
	LTE(Height) bool
	EQ(Height) bool
	GT(Height) bool
	GTE(Height) bool
	GetRevisionNumber() uint64
	GetRevisionHeight() uint64
	Increment() Height
	Decrement() (Height, bool)
	String() string
}

// String returns the string representation of a client status.
func (s Status) String() string {
	return string(s)
}
