package mock

import (
	"context"

	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
)

// IBCApp holds overrides of the mock handshake callbacks. Tests set a field to
// make the matching callback fail or pick a version; nil fields keep the
// default mock behaviour.
type IBCApp struct {
	PortID string

	OnChanOpenInit func(
		ctx context.Context, order channeltypes.Order, connectionHops []string,
		portID, channelID string, counterparty channeltypes.Counterparty, version string,
	) (string, error)

	OnChanOpenTry func(
		ctx context.Context, order channeltypes.Order, connectionHops []string,
		portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
	) (string, error)

	OnChanOpenAck func(ctx context.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) error

	OnChanOpenConfirm func(ctx context.Context, portID, channelID string) error
}

// NewIBCApp returns an IBCApp owning portID with no overrides set.
func NewIBCApp(portID string) *IBCApp {
	return &IBCApp{PortID: portID}
}
