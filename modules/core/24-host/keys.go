package host

import (
	"fmt"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// Path segments of the IBC store. Every key the store holds is built from
// these by the Path types in path.go or by the helpers below.
const (
	KeyClientState          = "clientState"
	KeyConsensusStatePrefix = "consensusStates"
	KeyNextClientSequence   = "nextClientSequence"

	KeyConnectionPrefix       = "connections"
	KeyNextConnectionSequence = "nextConnectionSequence"

	KeyPortPrefix          = "ports"
	KeyChannelEndPrefix    = "channelEnds"
	KeyChannelPrefix       = "channels"
	KeyNextChannelSequence = "nextChannelSequence"

	KeySequencePrefix         = "sequences"
	KeyNextSeqSendPrefix      = "nextSequenceSend"
	KeyNextSeqRecvPrefix      = "nextSequenceRecv"
	KeyNextSeqAckPrefix       = "nextSequenceAck"
	KeyPacketCommitmentPrefix = "commitments"
	KeyPacketAckPrefix        = "acks"
	KeyPacketReceiptPrefix    = "receipts"
)

// KeyClientStorePrefix is the first segment of every per-client key.
var KeyClientStorePrefix = []byte("clients")

// FullClientPath joins a client-relative path onto "clients/{clientID}".
func FullClientPath(clientID string, path string) string {
	return fmt.Sprintf("%s/%s/%s", KeyClientStorePrefix, clientID, path)
}

// PrefixedClientStoreKey returns "clients/{prefix}", the key prefix shared by
// every store entry of the clients matching prefix.
func PrefixedClientStoreKey(prefix []byte) []byte {
	return []byte(fmt.Sprintf("%s/%s", KeyClientStorePrefix, prefix))
}

func FullClientStateKey(clientID string) []byte {
	return PathKey(ClientStatePath{ClientID: clientID})
}

func FullConsensusStateKey(clientID string, height exported.Height) []byte {
	return PathKey(NewClientConsensusStatePath(clientID, height))
}

// ClientStateKey, ConsensusStateKey and ConsensusStatePrefixKey are relative
// to a client store, which is already scoped to "clients/{clientID}/".

func ClientStateKey() []byte {
	return []byte(KeyClientState)
}

func ConsensusStateKey(height exported.Height) []byte {
	return []byte(fmt.Sprintf("%s/%s", KeyConsensusStatePrefix, height))
}

func ConsensusStatePrefixKey() []byte {
	return []byte(KeyConsensusStatePrefix + "/")
}

func ClientConnectionsKey(clientID string) []byte {
	return PathKey(ClientConnectionsPath{ClientID: clientID})
}

func ConnectionKey(connectionID string) []byte {
	return PathKey(ConnectionPath{ConnectionID: connectionID})
}

// PortKey is the key holding the name of the module that owns portID.
func PortKey(portID string) []byte {
	return PathKey(PortPath{PortID: portID})
}

// ChannelPath is the string form of ChannelKey.
func ChannelPath(portID, channelID string) string {
	return KeyChannelEndPrefix + "/" + channelPath(portID, channelID)
}

func ChannelKey(portID, channelID string) []byte {
	return PathKey(ChannelEndPath{PortID: portID, ChannelID: channelID})
}

// PortChannelsPrefixKey prefixes every channel end opened on portID.
func PortChannelsPrefixKey(portID string) []byte {
	return []byte(fmt.Sprintf("%s/%s/%s/%s/", KeyChannelEndPrefix, KeyPortPrefix, portID, KeyChannelPrefix))
}

func NextSequenceSendKey(portID, channelID string) []byte {
	return PathKey(SeqSendPath{PortID: portID, ChannelID: channelID})
}

func NextSequenceRecvKey(portID, channelID string) []byte {
	return PathKey(SeqRecvPath{PortID: portID, ChannelID: channelID})
}

func NextSequenceAckKey(portID, channelID string) []byte {
	return PathKey(SeqAckPath{PortID: portID, ChannelID: channelID})
}

func PacketCommitmentKey(portID, channelID string, sequence uint64) []byte {
	return PathKey(CommitmentPath{PortID: portID, ChannelID: channelID, Sequence: sequence})
}

func PacketAcknowledgementKey(portID, channelID string, sequence uint64) []byte {
	return PathKey(AckPath{PortID: portID, ChannelID: channelID, Sequence: sequence})
}

func PacketReceiptKey(portID, channelID string, sequence uint64) []byte {
	return PathKey(ReceiptPath{PortID: portID, ChannelID: channelID, Sequence: sequence})
}

// channelPath is "ports/{portID}/channels/{channelID}", shared by channel
// ends, sequences and packet paths.
func channelPath(portID, channelID string) string {
	return fmt.Sprintf("%s/%s/%s/%s", KeyPortPrefix, portID, KeyChannelPrefix, channelID)
}

func sequencePath(sequence uint64) string {
	return fmt.Sprintf("%s/%d", KeySequencePrefix, sequence)
}
