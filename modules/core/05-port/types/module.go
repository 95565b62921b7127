package types

import (
	"context"

	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
)

// IBCModule is implemented by the application owning a port. Core IBC calls
// it after its own checks of a channel handshake step passed and before the
// channel end is written, so any error returned aborts the step and leaves the
// channel untouched.
type IBCModule interface {
	// OnChanOpenInit validates the channel parameters and returns the version
	// the channel is opened with. An empty version asks the application for
	// its default.
	OnChanOpenInit(
		ctx context.Context, order channeltypes.Order, connectionHops []string,
		portID, channelID string, counterparty channeltypes.Counterparty, version string,
	) (string, error)

	// OnChanOpenTry validates the counterparty's version and returns the final
	// channel version.
	OnChanOpenTry(
		ctx context.Context, order channeltypes.Order, connectionHops []string,
		portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
	) (version string, err error)

	// OnChanOpenAck checks the version the counterparty selected.
	OnChanOpenAck(ctx context.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) error

	// OnChanOpenConfirm runs when the counterparty end is OPEN.
	OnChanOpenConfirm(ctx context.Context, portID, channelID string) error
}
