package eclipse

import (
	"time"

	errorsmod "cosmossdk.io/errors"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/wire"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

var _ exported.ClientMessage = (*Header)(nil)

// Header is the block header of an eclipse chain as seen by the light client.
// It commits to the IBC state of the chain at Height through CommitmentRoot.
type Header struct {
	Height         clienttypes.Height `json:"height" yaml:"height"`
	CommitmentRoot []byte             `json:"commitment_root" yaml:"commitment_root"`
	Timestamp      time.Time          `json:"timestamp" yaml:"timestamp"`
}

// NewHeader creates a new Header instance.
func NewHeader(height clienttypes.Height, root []byte, timestamp time.Time) *Header {
	return &Header{
		Height:         height,
		CommitmentRoot: root,
		Timestamp:      timestamp,
	}
}

// ClientType defines that the Header is an eclipse header.
func (Header) ClientType() string {
	return exported.Eclipse
}

// ConsensusState returns the consensus state the header commits to.
func (h Header) ConsensusState() *ConsensusState {
	return NewConsensusState(h.CommitmentRoot, h.Timestamp)
}

// GetHeight returns the header height.
func (h Header) GetHeight() exported.Height {
	return h.Height
}

// ValidateBasic performs stateless checks on the header: the height must be
// non-zero, the commitment root non-empty and the timestamp set.
func (h Header) ValidateBasic() error {
	if h.Height.RevisionHeight == 0 {
		return errorsmod.Wrap(clienttypes.ErrInvalidHeader, "header height cannot be zero")
	}
	if len(h.CommitmentRoot) == 0 {
		return errorsmod.Wrap(ErrInvalidRoot, "commitment root cannot be empty")
	}
	if h.Timestamp.IsZero() || h.Timestamp.UnixNano() <= 0 {
		return errorsmod.Wrap(ErrInvalidTimestamp, "header timestamp must be a positive time")
	}
	return nil
}

// TypeURL implements exported.Marshaler.
func (Header) TypeURL() string {
	return HeaderTypeURL
}

// Marshal encodes the header as eclipse.ibc.v1.chain.Header.
func (h Header) Marshal() ([]byte, error) {
	bz := wire.AppendMessage(nil, 1, h.Height.Marshal())
	bz = wire.AppendBytes(bz, 2, h.CommitmentRoot)
	if h.Timestamp.IsZero() {
		return bz, nil
	}
	return wire.AppendTimestamp(bz, 3, h.Timestamp)
}

// Unmarshal decodes an eclipse.ibc.v1.chain.Header.
func (h *Header) Unmarshal(bz []byte) error {
	var header Header
	err := wire.Range(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			return header.Height.Unmarshal(f.Bytes)
		case 2:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			header.CommitmentRoot = append([]byte(nil), f.Bytes...)
		case 3:
			if err := wire.ExpectType(f, protowire.BytesType); err != nil {
				return err
			}
			ts, err := wire.UnmarshalTimestamp(f.Bytes)
			if err != nil {
				return err
			}
			header.Timestamp = ts
		}
		return nil
	})
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrEncoding, "failed to unmarshal eclipse header: %v", err)
	}
	*h = header
	return nil
}
