package mock

import (
	"context"
	"strings"

	errorsmod "cosmossdk.io/errors"

	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
)

const (
	ModuleName = "mock"
	PortID     = ModuleName
	Version    = "mock-version"
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

type callbackError struct{}

func (callbackError) Error() string { return "mock application callback failed" }

// MockApplicationCallbackError is what IBCApp overrides return to make a
// callback fail; match it with errors.Is.
var MockApplicationCallbackError error = callbackError{}

// IBCModule is an application that speaks only Version. Each callback defers
// to the matching IBCApp override when one is set.
type IBCModule struct {
	IBCApp *IBCApp
}

func NewIBCModule(app *IBCApp) IBCModule {
	return IBCModule{IBCApp: app}
}

// OnChanOpenInit settles on Version when the relayer proposed none.
func (im IBCModule) OnChanOpenInit(
	ctx context.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, version string,
) (string, error) {
	if strings.TrimSpace(version) == "" {
		version = Version
	}
	if override := im.IBCApp.OnChanOpenInit; override != nil {
		return override(ctx, order, connectionHops, portID, channelID, counterparty, version)
	}

	if err := checkVersion("proposed", version); err != nil {
		return "", err
	}
	return version, nil
}

func (im IBCModule) OnChanOpenTry(
	ctx context.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
) (string, error) {
	if override := im.IBCApp.OnChanOpenTry; override != nil {
		return override(ctx, order, connectionHops, portID, channelID, counterparty, counterpartyVersion)
	}

	if err := checkVersion("counterparty", counterpartyVersion); err != nil {
		return "", err
	}
	return Version, nil
}

func (im IBCModule) OnChanOpenAck(ctx context.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) error {
	if override := im.IBCApp.OnChanOpenAck; override != nil {
		return override(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion)
	}
	return checkVersion("counterparty", counterpartyVersion)
}

func (im IBCModule) OnChanOpenConfirm(ctx context.Context, portID, channelID string) error {
	if override := im.IBCApp.OnChanOpenConfirm; override != nil {
		return override(ctx, portID, channelID)
	}
	return nil
}

func checkVersion(which, version string) error {
	if version != Version {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelVersion, "%s version: expected %s, got %s", which, Version, version)
	}
	return nil
}
