package host

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Path is one of the known ICS-24 store paths. The set of implementations is
// closed: every path the IBC store may hold has a type in this file.
type Path interface {
	fmt.Stringer

	// Validate checks every identifier embedded in the path.
	Validate() error

	isPath()
}

// PathKey returns the store key of a known path.
func PathKey(p Path) []byte {
	return []byte(p.String())
}

// ClientStatePath is the path of a client state: "clients/{clientID}/clientState".
type ClientStatePath struct {
	ClientID string
}

// ClientConsensusStatePath is the path of a consensus state:
// "clients/{clientID}/consensusStates/{revision}-{height}".
type ClientConsensusStatePath struct {
	ClientID       string
	RevisionNumber uint64
	RevisionHeight uint64
}

// NewClientConsensusStatePath returns the consensus state path of a client at the given height.
func NewClientConsensusStatePath(clientID string, height exported.Height) ClientConsensusStatePath {
	return ClientConsensusStatePath{
		ClientID:       clientID,
		RevisionNumber: height.GetRevisionNumber(),
		RevisionHeight: height.GetRevisionHeight(),
	}
}

// ClientConnectionsPath is the path of the connection list of a client: "clients/{clientID}/connections".
type ClientConnectionsPath struct {
	ClientID string
}

// ConnectionPath is the path of a connection end: "connections/{connectionID}".
type ConnectionPath struct {
	ConnectionID string
}

// ChannelEndPath is the path of a channel end: "channelEnds/ports/{portID}/channels/{channelID}".
type ChannelEndPath struct {
	PortID    string
	ChannelID string
}

// PortPath is the path of a bound port: "ports/{portID}".
type PortPath struct {
	PortID string
}

// SeqSendPath is the path of the next send sequence of a channel.
type SeqSendPath struct {
	PortID    string
	ChannelID string
}

// SeqRecvPath is the path of the next receive sequence of a channel.
type SeqRecvPath struct {
	PortID    string
	ChannelID string
}

// SeqAckPath is the path of the next acknowledgement sequence of a channel.
type SeqAckPath struct {
	PortID    string
	ChannelID string
}

// CommitmentPath is the path of a packet commitment.
type CommitmentPath struct {
	PortID    string
	ChannelID string
	Sequence  uint64
}

// AckPath is the path of a packet acknowledgement.
type AckPath struct {
	PortID    string
	ChannelID string
	Sequence  uint64
}

// ReceiptPath is the path of a packet receipt.
type ReceiptPath struct {
	PortID    string
	ChannelID string
	Sequence  uint64
}

var (
	_ Path = ClientStatePath{}
	_ Path = ClientConsensusStatePath{}
	_ Path = ClientConnectionsPath{}
	_ Path = ConnectionPath{}
	_ Path = ChannelEndPath{}
	_ Path = PortPath{}
	_ Path = SeqSendPath{}
	_ Path = SeqRecvPath{}
	_ Path = SeqAckPath{}
	_ Path = CommitmentPath{}
	_ Path = AckPath{}
	_ Path = ReceiptPath{}
)

func (p ClientStatePath) String() string {
	return FullClientPath(p.ClientID, KeyClientState)
}

func (p ClientConsensusStatePath) String() string {
	return FullClientPath(p.ClientID, fmt.Sprintf("%s/%d-%d", KeyConsensusStatePrefix, p.RevisionNumber, p.RevisionHeight))
}

func (p ClientConnectionsPath) String() string {
	return FullClientPath(p.ClientID, KeyConnectionPrefix)
}

func (p ConnectionPath) String() string {
	return fmt.Sprintf("%s/%s", KeyConnectionPrefix, p.ConnectionID)
}

func (p ChannelEndPath) String() string {
	return ChannelPath(p.PortID, p.ChannelID)
}

func (p PortPath) String() string {
	return fmt.Sprintf("%s/%s", KeyPortPrefix, p.PortID)
}

func (p SeqSendPath) String() string {
	return fmt.Sprintf("%s/%s", KeyNextSeqSendPrefix, channelPath(p.PortID, p.ChannelID))
}

func (p SeqRecvPath) String() string {
	return fmt.Sprintf("%s/%s", KeyNextSeqRecvPrefix, channelPath(p.PortID, p.ChannelID))
}

func (p SeqAckPath) String() string {
	return fmt.Sprintf("%s/%s", KeyNextSeqAckPrefix, channelPath(p.PortID, p.ChannelID))
}

func (p CommitmentPath) String() string {
	return fmt.Sprintf("%s/%s/%s", KeyPacketCommitmentPrefix, channelPath(p.PortID, p.ChannelID), sequencePath(p.Sequence))
}

func (p AckPath) String() string {
	return fmt.Sprintf("%s/%s/%s", KeyPacketAckPrefix, channelPath(p.PortID, p.ChannelID), sequencePath(p.Sequence))
}

func (p ReceiptPath) String() string {
	return fmt.Sprintf("%s/%s/%s", KeyPacketReceiptPrefix, channelPath(p.PortID, p.ChannelID), sequencePath(p.Sequence))
}

func (p ClientStatePath) Validate() error { return ClientIdentifierValidator(p.ClientID) }

func (p ClientConsensusStatePath) Validate() error {
	if p.RevisionHeight == 0 {
		return errorsmod.Wrapf(ErrInvalidPath, "consensus state path %s: revision height cannot be zero", p)
	}
	return ClientIdentifierValidator(p.ClientID)
}

func (p ClientConnectionsPath) Validate() error { return ClientIdentifierValidator(p.ClientID) }

func (p ConnectionPath) Validate() error { return ConnectionIdentifierValidator(p.ConnectionID) }

func (p ChannelEndPath) Validate() error { return validatePortChannel(p.PortID, p.ChannelID) }

func (p PortPath) Validate() error { return PortIdentifierValidator(p.PortID) }

func (p SeqSendPath) Validate() error { return validatePortChannel(p.PortID, p.ChannelID) }

func (p SeqRecvPath) Validate() error { return validatePortChannel(p.PortID, p.ChannelID) }

func (p SeqAckPath) Validate() error { return validatePortChannel(p.PortID, p.ChannelID) }

func (p CommitmentPath) Validate() error { return validatePacketPath(p.PortID, p.ChannelID, p.Sequence) }

func (p AckPath) Validate() error { return validatePacketPath(p.PortID, p.ChannelID, p.Sequence) }

func (p ReceiptPath) Validate() error { return validatePacketPath(p.PortID, p.ChannelID, p.Sequence) }

func (ClientStatePath) isPath()          {}
func (ClientConsensusStatePath) isPath() {}
func (ClientConnectionsPath) isPath()    {}
func (ConnectionPath) isPath()           {}
func (ChannelEndPath) isPath()           {}
func (PortPath) isPath()                 {}
func (SeqSendPath) isPath()              {}
func (SeqRecvPath) isPath()              {}
func (SeqAckPath) isPath()               {}
func (CommitmentPath) isPath()           {}
func (AckPath) isPath()                  {}
func (ReceiptPath) isPath()              {}

func validatePortChannel(portID, channelID string) error {
	if err := PortIdentifierValidator(portID); err != nil {
		return err
	}
	return ChannelIdentifierValidator(channelID)
}

func validatePacketPath(portID, channelID string, sequence uint64) error {
	if sequence == 0 {
		return errorsmod.Wrap(ErrInvalidPacket, "packet sequence cannot be 0")
	}
	return validatePortChannel(portID, channelID)
}
