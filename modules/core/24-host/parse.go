package host

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// ParseIdentifier parses the sequence from the identifier using the provided prefix. This function
// does not need to be used by counterparty chains. Generated connection and channel identifiers
// are required to use this format.
func ParseIdentifier(identifier, prefix string) (uint64, error) {
	if !strings.HasPrefix(identifier, prefix) {
		return 0, errorsmod.Wrapf(ErrInvalidID, "identifier doesn't contain prefix `%s`", prefix)
	}

	splitStr := strings.Split(identifier, prefix)
	if len(splitStr) != 2 {
		return 0, errorsmod.Wrapf(ErrInvalidID, "identifier must be in format: `%s{N}`", prefix)
	}

	// sanity check
	if splitStr[0] != "" {
		return 0, errorsmod.Wrapf(ErrInvalidID, "identifier must begin with prefix %s", prefix)
	}

	sequence, err := strconv.ParseUint(splitStr[1], 10, 64)
	if err != nil {
		return 0, errorsmod.Wrapf(ErrInvalidID, "failed to parse identifier sequence: %s", err)
	}
	return sequence, nil
}

// ParsePath decodes a store key back into the known path it was encoded from.
// Keys that do not match any known path, or that embed invalid identifiers,
// are rejected with ErrInvalidPath.
func ParsePath(key string) (Path, error) {
	p, err := parsePath(strings.Split(key, "/"))
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidPath, "%s: %s", key, err)
	}
	if err := p.Validate(); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidPath, "%s: %s", key, err)
	}
	// identifiers may not carry separators, so a valid path re-encodes to the same key
	if p.String() != key {
		return nil, errorsmod.Wrapf(ErrInvalidPath, "%s is not in canonical form", key)
	}
	return p, nil
}

func parsePath(parts []string) (Path, error) {
	switch parts[0] {
	case string(KeyClientStorePrefix):
		return parseClientPath(parts)
	case KeyConnectionPrefix:
		if len(parts) != 2 {
			return nil, errorsmod.Wrap(ErrInvalidPath, "connection path must have 2 elements")
		}
		return ConnectionPath{ConnectionID: parts[1]}, nil
	case KeyPortPrefix:
		if len(parts) != 2 {
			return nil, errorsmod.Wrap(ErrInvalidPath, "port path must have 2 elements")
		}
		return PortPath{PortID: parts[1]}, nil
	case KeyChannelEndPrefix, KeyNextSeqSendPrefix, KeyNextSeqRecvPrefix, KeyNextSeqAckPrefix:
		if len(parts) != 5 {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "%s path must have 5 elements", parts[0])
		}
		portID, channelID, err := parseChannelPath(parts[1:])
		if err != nil {
			return nil, err
		}
		switch parts[0] {
		case KeyChannelEndPrefix:
			return ChannelEndPath{PortID: portID, ChannelID: channelID}, nil
		case KeyNextSeqSendPrefix:
			return SeqSendPath{PortID: portID, ChannelID: channelID}, nil
		case KeyNextSeqRecvPrefix:
			return SeqRecvPath{PortID: portID, ChannelID: channelID}, nil
		default:
			return SeqAckPath{PortID: portID, ChannelID: channelID}, nil
		}
	case KeyPacketCommitmentPrefix, KeyPacketAckPrefix, KeyPacketReceiptPrefix:
		if len(parts) != 7 || parts[5] != KeySequencePrefix {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "%s path must be {prefix}/ports/{port}/channels/{channel}/sequences/{sequence}", parts[0])
		}
		portID, channelID, err := parseChannelPath(parts[1:5])
		if err != nil {
			return nil, err
		}
		sequence, err := strconv.ParseUint(parts[6], 10, 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "invalid packet sequence %s", parts[6])
		}
		switch parts[0] {
		case KeyPacketCommitmentPrefix:
			return CommitmentPath{PortID: portID, ChannelID: channelID, Sequence: sequence}, nil
		case KeyPacketAckPrefix:
			return AckPath{PortID: portID, ChannelID: channelID, Sequence: sequence}, nil
		default:
			return ReceiptPath{PortID: portID, ChannelID: channelID, Sequence: sequence}, nil
		}
	default:
		return nil, errorsmod.Wrapf(ErrInvalidPath, "unknown path prefix %s", parts[0])
	}
}

func parseClientPath(parts []string) (Path, error) {
	switch {
	case len(parts) == 3 && parts[2] == KeyClientState:
		return ClientStatePath{ClientID: parts[1]}, nil
	case len(parts) == 3 && parts[2] == KeyConnectionPrefix:
		return ClientConnectionsPath{ClientID: parts[1]}, nil
	case len(parts) == 4 && parts[2] == KeyConsensusStatePrefix:
		revision, height, found := strings.Cut(parts[3], "-")
		if !found {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "consensus height %s must be {revision}-{height}", parts[3])
		}
		revisionNumber, err := strconv.ParseUint(revision, 10, 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "invalid revision number %s", revision)
		}
		revisionHeight, err := strconv.ParseUint(height, 10, 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "invalid revision height %s", height)
		}
		return ClientConsensusStatePath{ClientID: parts[1], RevisionNumber: revisionNumber, RevisionHeight: revisionHeight}, nil
	default:
		return nil, errorsmod.Wrap(ErrInvalidPath, "unknown client path")
	}
}

// parseChannelPath parses "ports/{portID}/channels/{channelID}".
func parseChannelPath(parts []string) (string, string, error) {
	if parts[0] != KeyPortPrefix || parts[2] != KeyChannelPrefix {
		return "", "", errorsmod.Wrap(ErrInvalidPath, "channel path must be ports/{port}/channels/{channel}")
	}
	return parts[1], parts[3], nil
}
