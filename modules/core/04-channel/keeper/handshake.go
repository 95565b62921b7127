package keeper

import (
	"context"
	"slices"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/internal/telemetry"
)

// ChanOpenInit is called by a module to initiate a channel opening handshake with
// a module on another chain. The identifier the channel will be stored under is
// returned; nothing is written until WriteOpenInitChannel is called.
func (k *Keeper) ChanOpenInit(
	ctx context.Context,
	order types.Order,
	connectionHops []string,
	portID string,
	counterparty types.Counterparty,
	version string,
) (string, error) {
	if !k.portKeeper.IsBound(ctx, portID) {
		return "", errorsmod.Wrapf(porttypes.ErrPortNotBound, "port (%s)", portID)
	}

	connectionEnd, err := k.getOpenConnection(ctx, connectionHops)
	if err != nil {
		return "", err
	}

	if err := verifyOrderingSupported(connectionEnd, order); err != nil {
		return "", err
	}

	if err := clienttypes.ValidateStatus(k.clientKeeper.GetClientStatus(ctx, connectionEnd.ClientId), connectionEnd.ClientId); err != nil {
		return "", err
	}

	return k.nextChannelIdentifier(ctx), nil
}

// WriteOpenInitChannel writes a channel which has successfully passed the OpenInit handshake step.
// The channel is set in state and all the associated sequences are set to 1.
func (k *Keeper) WriteOpenInitChannel(
	ctx context.Context,
	portID,
	channelID string,
	order types.Order,
	connectionHops []string,
	counterparty types.Counterparty,
	version string,
) {
	channel := types.NewChannel(types.INIT, order, counterparty, connectionHops, version)
	k.storeNewChannel(ctx, portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.UNINITIALIZED, "new-state", types.INIT)

	defer telemetry.ReportChannelHandshake("open-init", portID, channelID)
}

// ChanOpenTry is called by a module to accept the first step of a channel opening
// handshake initiated by a module on another chain. The identifier the channel
// will be stored under is returned; nothing is written until WriteOpenTryChannel
// is called.
func (k *Keeper) ChanOpenTry(
	ctx context.Context,
	order types.Order,
	connectionHops []string,
	portID string,
	counterparty types.Counterparty,
	counterpartyVersion string,
	initProof []byte,
	proofHeight exported.Height,
) (string, error) {
	if !k.portKeeper.IsBound(ctx, portID) {
		return "", errorsmod.Wrapf(porttypes.ErrPortNotBound, "port (%s)", portID)
	}

	connectionEnd, err := k.getOpenConnection(ctx, connectionHops)
	if err != nil {
		return "", err
	}

	if err := verifyOrderingSupported(connectionEnd, order); err != nil {
		return "", err
	}

	// a channel end answering the same counterparty channel over the same
	// connection must not be created twice
	if existing, found := k.findAnsweredChannel(ctx, portID, connectionHops[0], counterparty); found {
		return "", errorsmod.Wrapf(
			types.ErrInvalidChannelState,
			"channel (%s) on port (%s) already answered counterparty channel (%s) and is in state %s",
			existing.ChannelId, portID, counterparty.ChannelId, existing.State,
		)
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionId}

	// expectedCounterparty is the counterparty of the counterparty's channel end
	// (i.e self)
	expectedCounterparty := types.NewCounterparty(portID, "")
	expectedChannel := types.NewChannel(
		types.INIT, order, expectedCounterparty,
		counterpartyHops, counterpartyVersion,
	)

	if err := k.connectionKeeper.VerifyChannelState(
		ctx, connectionEnd, proofHeight, initProof,
		counterparty.PortId, counterparty.ChannelId, expectedChannel.Marshal(),
	); err != nil {
		return "", err
	}

	return k.nextChannelIdentifier(ctx), nil
}

// WriteOpenTryChannel writes a channel which has successfully passed the OpenTry handshake step.
// The channel is set in state. If a previous channel state did not exist, all the associated
// sequences are set to 1.
func (k *Keeper) WriteOpenTryChannel(
	ctx context.Context,
	portID,
	channelID string,
	order types.Order,
	connectionHops []string,
	counterparty types.Counterparty,
	version string,
) {
	channel := types.NewChannel(types.TRYOPEN, order, counterparty, connectionHops, version)
	k.storeNewChannel(ctx, portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.UNINITIALIZED, "new-state", types.TRYOPEN)

	defer telemetry.ReportChannelHandshake("open-try", portID, channelID)
}

// ChanOpenAck is called by the handshake-originating module to acknowledge the
// acceptance of the initial request by the counterparty module on the other chain.
func (k *Keeper) ChanOpenAck(
	ctx context.Context,
	portID,
	channelID string,
	counterpartyVersion,
	counterpartyChannelID string,
	tryProof []byte,
	proofHeight exported.Height,
) error {
	// a missing channel is UNINITIALIZED
	channel, _ := k.GetChannel(ctx, portID, channelID)
	if channel.State != types.INIT {
		return errorsmod.Wrapf(types.ErrInvalidChannelState, "channel (%s) state is not INIT (got %s)", channelID, channel.State)
	}

	connectionEnd, err := k.getOpenConnection(ctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionId}

	// counterparty of the counterparty channel end (i.e self)
	expectedCounterparty := types.NewCounterparty(portID, channelID)
	expectedChannel := types.NewChannel(
		types.TRYOPEN, channel.Ordering, expectedCounterparty,
		counterpartyHops, counterpartyVersion,
	)

	return k.connectionKeeper.VerifyChannelState(
		ctx, connectionEnd, proofHeight, tryProof,
		channel.Counterparty.PortId, counterpartyChannelID,
		expectedChannel.Marshal(),
	)
}

// WriteOpenAckChannel writes an updated channel state for the successful OpenAck handshake step.
func (k *Keeper) WriteOpenAckChannel(
	ctx context.Context,
	portID,
	channelID,
	counterpartyVersion,
	counterpartyChannelID string,
) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		panic(errorsmod.Wrapf(types.ErrChannelNotFound, "failed to retrieve channel end with port ID (%s) and channel ID (%s)", portID, channelID))
	}

	channel.State = types.OPEN
	channel.Version = counterpartyVersion
	channel.Counterparty.ChannelId = counterpartyChannelID
	k.SetChannel(ctx, portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.INIT, "new-state", types.OPEN)

	defer telemetry.ReportChannelHandshake("open-ack", portID, channelID)
}

// ChanOpenConfirm is called by the handshake-accepting module to confirm the acknowledgement
// of the handshake-originator's acknowledgement of its acceptance of the initial request.
func (k *Keeper) ChanOpenConfirm(
	ctx context.Context,
	portID,
	channelID string,
	ackProof []byte,
	proofHeight exported.Height,
) error {
	// a missing channel is UNINITIALIZED
	channel, _ := k.GetChannel(ctx, portID, channelID)
	if channel.State != types.TRYOPEN {
		return errorsmod.Wrapf(
			types.ErrInvalidChannelState,
			"channel (%s) state is not TRYOPEN (got %s)", channelID, channel.State,
		)
	}

	connectionEnd, err := k.getOpenConnection(ctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionId}

	counterparty := types.NewCounterparty(portID, channelID)
	expectedChannel := types.NewChannel(
		types.OPEN, channel.Ordering, counterparty,
		counterpartyHops, channel.Version,
	)

	return k.connectionKeeper.VerifyChannelState(
		ctx, connectionEnd, proofHeight, ackProof,
		channel.Counterparty.PortId, channel.Counterparty.ChannelId,
		expectedChannel.Marshal(),
	)
}

// WriteOpenConfirmChannel writes an updated channel state for the successful OpenConfirm handshake step.
func (k *Keeper) WriteOpenConfirmChannel(
	ctx context.Context,
	portID,
	channelID string,
) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		panic(errorsmod.Wrapf(types.ErrChannelNotFound, "failed to retrieve channel end with port ID (%s) and channel ID (%s)", portID, channelID))
	}

	channel.State = types.OPEN
	k.SetChannel(ctx, portID, channelID, channel)

	k.Logger().Info("channel state updated", "port-id", portID, "channel-id", channelID, "previous-state", types.TRYOPEN, "new-state", types.OPEN)

	defer telemetry.ReportChannelHandshake("open-confirm", portID, channelID)
}

// storeNewChannel consumes the next channel sequence and stores a new channel end
// with its packet sequences set to 1.
func (k *Keeper) storeNewChannel(ctx context.Context, portID, channelID string, channel types.Channel) {
	k.SetNextChannelSequence(ctx, k.GetNextChannelSequence(ctx)+1)
	k.SetChannel(ctx, portID, channelID, channel)
	k.SetNextSequenceSend(ctx, portID, channelID, 1)
	k.SetNextSequenceRecv(ctx, portID, channelID, 1)
	k.SetNextSequenceAck(ctx, portID, channelID, 1)
}

// getOpenConnection returns the single connection hop of a channel. It fails
// with ErrConnectionNotOpen unless that connection exists and is OPEN.
func (k *Keeper) getOpenConnection(ctx context.Context, connectionHops []string) (connectiontypes.ConnectionEnd, error) {
	if len(connectionHops) != 1 {
		return connectiontypes.ConnectionEnd{}, errorsmod.Wrap(types.ErrTooManyConnectionHops, "current IBC version only supports one connection hop")
	}

	connectionEnd, found := k.connectionKeeper.GetConnection(ctx, connectionHops[0])
	if !found {
		return connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(types.ErrConnectionNotOpen, "connection (%s) does not exist", connectionHops[0])
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(
			types.ErrConnectionNotOpen,
			"connection (%s) state is not OPEN (got %s)", connectionHops[0], connectionEnd.State,
		)
	}

	return connectionEnd, nil
}

// verifyOrderingSupported checks that the negotiated connection version supports
// the requested channel ordering.
func verifyOrderingSupported(connectionEnd connectiontypes.ConnectionEnd, order types.Order) error {
	if len(connectionEnd.Versions) != 1 {
		return errorsmod.Wrapf(
			connectiontypes.ErrInvalidVersion,
			"single version must be negotiated on connection before opening channel, got: %v",
			connectionEnd.Versions,
		)
	}

	if !connectiontypes.VerifySupportedFeature(connectionEnd.Versions[0], order.String()) {
		return errorsmod.Wrapf(
			connectiontypes.ErrInvalidVersion,
			"connection version %s does not support channel ordering: %s",
			connectionEnd.Versions[0], order,
		)
	}

	return nil
}

// findAnsweredChannel returns the channel end of portID on connectionID which
// already answered the given counterparty channel, if any. Channel identifiers
// are only unique per chain, so the connection tells counterparties apart.
func (k *Keeper) findAnsweredChannel(ctx context.Context, portID, connectionID string, counterparty types.Counterparty) (types.IdentifiedChannel, bool) {
	var (
		answered types.IdentifiedChannel
		found    bool
	)
	k.IteratePortChannels(ctx, portID, func(channel types.IdentifiedChannel) bool {
		if channel.Counterparty == counterparty && slices.Equal(channel.ConnectionHops, []string{connectionID}) {
			answered, found = channel, true
		}
		return found
	})
	return answered, found
}
