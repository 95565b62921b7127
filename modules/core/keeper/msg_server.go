package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
)

// CreateClient defines a rpc handler method for MsgCreateClient.
func (k *Keeper) CreateClient(ctx context.Context, msg *clienttypes.MsgCreateClient) (*clienttypes.MsgCreateClientResponse, error) {
	clientState, err := k.registry.UnpackClientState(msg.ClientState)
	if err != nil {
		return nil, err
	}

	consensusState, err := k.registry.UnpackConsensusState(msg.ConsensusState)
	if err != nil {
		return nil, err
	}

	if clientState.ClientType() != consensusState.ClientType() {
		return nil, errorsmod.Wrapf(
			clienttypes.ErrInvalidClientType,
			"client state type %s does not match consensus state type %s", clientState.ClientType(), consensusState.ClientType(),
		)
	}

	// light client modules receive the encoded states without the Any envelope
	clientStateBz, err := clientState.Marshal()
	if err != nil {
		return nil, err
	}
	consensusStateBz, err := consensusState.Marshal()
	if err != nil {
		return nil, err
	}

	clientID, err := k.ClientKeeper.CreateClient(ctx, clientState.ClientType(), clientStateBz, consensusStateBz)
	if err != nil {
		return nil, err
	}

	return &clienttypes.MsgCreateClientResponse{ClientId: clientID}, nil
}

// UpdateClient defines a rpc handler method for MsgUpdateClient.
func (k *Keeper) UpdateClient(ctx context.Context, msg *clienttypes.MsgUpdateClient) (*clienttypes.MsgUpdateClientResponse, error) {
	clientMsg, err := k.registry.UnpackClientMessage(msg.ClientMessage)
	if err != nil {
		return nil, err
	}

	consensusHeights, err := k.ClientKeeper.UpdateClient(ctx, msg.ClientId, clientMsg)
	if err != nil {
		return nil, err
	}

	heights := make([]clienttypes.Height, 0, len(consensusHeights))
	for _, height := range consensusHeights {
		heights = append(heights, clienttypes.NewHeight(height.GetRevisionNumber(), height.GetRevisionHeight()))
	}

	return &clienttypes.MsgUpdateClientResponse{ConsensusHeights: heights}, nil
}

// ConnectionOpenInit defines a rpc handler method for MsgConnectionOpenInit.
func (k *Keeper) ConnectionOpenInit(ctx context.Context, msg *connectiontypes.MsgConnectionOpenInit) (*connectiontypes.MsgConnectionOpenInitResponse, error) {
	connectionID, err := k.ConnectionKeeper.ConnOpenInit(ctx, msg.ClientId, msg.Counterparty, msg.Version, msg.DelayPeriod)
	if err != nil {
		return nil, errorsmod.Wrap(err, "connection handshake open init failed")
	}

	return &connectiontypes.MsgConnectionOpenInitResponse{ConnectionId: connectionID}, nil
}

// ConnectionOpenTry defines a rpc handler method for MsgConnectionOpenTry.
func (k *Keeper) ConnectionOpenTry(ctx context.Context, msg *connectiontypes.MsgConnectionOpenTry) (*connectiontypes.MsgConnectionOpenTryResponse, error) {
	connectionID, err := k.ConnectionKeeper.ConnOpenTry(
		ctx, msg.Counterparty, msg.DelayPeriod, msg.ClientId,
		msg.CounterpartyVersions, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		return nil, errorsmod.Wrap(err, "connection handshake open try failed")
	}

	return &connectiontypes.MsgConnectionOpenTryResponse{ConnectionId: connectionID}, nil
}

// ConnectionOpenAck defines a rpc handler method for MsgConnectionOpenAck.
func (k *Keeper) ConnectionOpenAck(ctx context.Context, msg *connectiontypes.MsgConnectionOpenAck) (*connectiontypes.MsgConnectionOpenAckResponse, error) {
	if err := k.ConnectionKeeper.ConnOpenAck(
		ctx, msg.ConnectionId, msg.Version, msg.CounterpartyConnectionId,
		msg.ProofTry, msg.ProofHeight,
	); err != nil {
		return nil, errorsmod.Wrap(err, "connection handshake open ack failed")
	}

	return &connectiontypes.MsgConnectionOpenAckResponse{}, nil
}

// ConnectionOpenConfirm defines a rpc handler method for MsgConnectionOpenConfirm.
func (k *Keeper) ConnectionOpenConfirm(ctx context.Context, msg *connectiontypes.MsgConnectionOpenConfirm) (*connectiontypes.MsgConnectionOpenConfirmResponse, error) {
	if err := k.ConnectionKeeper.ConnOpenConfirm(
		ctx, msg.ConnectionId, msg.ProofAck, msg.ProofHeight,
	); err != nil {
		return nil, errorsmod.Wrap(err, "connection handshake open confirm failed")
	}

	return &connectiontypes.MsgConnectionOpenConfirmResponse{}, nil
}

// BindPort defines a rpc handler method for MsgBindPort.
func (k *Keeper) BindPort(ctx context.Context, msg *porttypes.MsgBindPort) (*porttypes.MsgBindPortResponse, error) {
	if err := k.PortKeeper.BindPort(ctx, msg.PortId, msg.Module); err != nil {
		return nil, err
	}

	return &porttypes.MsgBindPortResponse{}, nil
}

// ReleasePort defines a rpc handler method for MsgReleasePort.
func (k *Keeper) ReleasePort(ctx context.Context, msg *porttypes.MsgReleasePort) (*porttypes.MsgReleasePortResponse, error) {
	if err := k.PortKeeper.ReleasePort(ctx, msg.PortId, msg.Module); err != nil {
		return nil, err
	}

	return &porttypes.MsgReleasePortResponse{}, nil
}

// ChannelOpenInit defines a rpc handler method for MsgChannelOpenInit.
// ChannelOpenInit will perform 04-channel checks, route to the application
// callback, and write an OpenInit channel into state upon successful execution.
func (k *Keeper) ChannelOpenInit(ctx context.Context, msg *channeltypes.MsgChannelOpenInit) (*channeltypes.MsgChannelOpenInitResponse, error) {
	// Perform 04-channel verification
	channelID, err := k.ChannelKeeper.ChanOpenInit(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		k.logger.Error("channel open init failed", "port-id", msg.PortId, "error", err.Error())
		return nil, errorsmod.Wrap(err, "channel handshake open init failed")
	}

	// Retrieve application callbacks from router
	cbs, err := k.PortKeeper.Route(ctx, msg.PortId)
	if err != nil {
		k.logger.Error("channel open init failed", "port-id", msg.PortId, "error", err.Error())
		return nil, err
	}

	// Perform application logic callback
	version, err := cbs.OnChanOpenInit(ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, channelID, msg.Channel.Counterparty, msg.Channel.Version)
	if err != nil {
		k.logger.Error("channel open init callback failed", "port-id", msg.PortId, "channel-id", channelID, "error", err.Error())
		return nil, errorsmod.Wrapf(err, "channel open init callback failed for port ID: %s, channel ID: %s", msg.PortId, channelID)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenInitChannel(ctx, msg.PortId, channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.Channel.Counterparty, version)

	k.logger.Info("channel open init callback succeeded", "channel-id", channelID, "version", version)

	return &channeltypes.MsgChannelOpenInitResponse{
		ChannelId: channelID,
		Version:   version,
	}, nil
}

// ChannelOpenTry defines a rpc handler method for MsgChannelOpenTry.
// ChannelOpenTry will perform 04-channel checks, route to the application
// callback, and write an OpenTry channel into state upon successful execution.
func (k *Keeper) ChannelOpenTry(ctx context.Context, msg *channeltypes.MsgChannelOpenTry) (*channeltypes.MsgChannelOpenTryResponse, error) {
	// Perform 04-channel verification
	channelID, err := k.ChannelKeeper.ChanOpenTry(ctx,
		msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		msg.Channel.Counterparty, msg.CounterpartyVersion, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		k.logger.Error("channel open try failed", "port-id", msg.PortId, "error", err.Error())
		return nil, errorsmod.Wrap(err, "channel handshake open try failed")
	}

	// Retrieve application callbacks from router
	cbs, err := k.PortKeeper.Route(ctx, msg.PortId)
	if err != nil {
		k.logger.Error("channel open try failed", "port-id", msg.PortId, "error", err.Error())
		return nil, err
	}

	// Perform application logic callback
	version, err := cbs.OnChanOpenTry(ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, channelID, msg.Channel.Counterparty, msg.CounterpartyVersion)
	if err != nil {
		k.logger.Error("channel open try callback failed", "port-id", msg.PortId, "channel-id", channelID, "error", err.Error())
		return nil, errorsmod.Wrapf(err, "channel open try callback failed for port ID: %s, channel ID: %s", msg.PortId, channelID)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenTryChannel(ctx, msg.PortId, channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.Channel.Counterparty, version)

	k.logger.Info("channel open try callback succeeded", "channel-id", channelID, "port-id", msg.PortId, "version", version)

	return &channeltypes.MsgChannelOpenTryResponse{
		ChannelId: channelID,
		Version:   version,
	}, nil
}

// ChannelOpenAck defines a rpc handler method for MsgChannelOpenAck.
// ChannelOpenAck will perform 04-channel checks, route to the application
// callback, and write an OpenAck channel into state upon successful execution.
func (k *Keeper) ChannelOpenAck(ctx context.Context, msg *channeltypes.MsgChannelOpenAck) (*channeltypes.MsgChannelOpenAckResponse, error) {
	// Perform 04-channel verification
	if err := k.ChannelKeeper.ChanOpenAck(
		ctx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion, msg.CounterpartyChannelId, msg.ProofTry, msg.ProofHeight,
	); err != nil {
		k.logger.Error("channel open ack failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, errorsmod.Wrap(err, "channel handshake open ack failed")
	}

	// Retrieve application callbacks from router
	cbs, err := k.PortKeeper.Route(ctx, msg.PortId)
	if err != nil {
		k.logger.Error("channel open ack failed", "port-id", msg.PortId, "error", err.Error())
		return nil, err
	}

	// Perform application logic callback
	if err := cbs.OnChanOpenAck(ctx, msg.PortId, msg.ChannelId, msg.CounterpartyChannelId, msg.CounterpartyVersion); err != nil {
		k.logger.Error("channel handshake open ack callback failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, errorsmod.Wrapf(err, "channel open ack callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenAckChannel(ctx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion, msg.CounterpartyChannelId)

	k.logger.Info("channel open ack callback succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelOpenAckResponse{}, nil
}

// ChannelOpenConfirm defines a rpc handler method for MsgChannelOpenConfirm.
// ChannelOpenConfirm will perform 04-channel checks, route to the application
// callback, and write an OpenConfirm channel into state upon successful execution.
func (k *Keeper) ChannelOpenConfirm(ctx context.Context, msg *channeltypes.MsgChannelOpenConfirm) (*channeltypes.MsgChannelOpenConfirmResponse, error) {
	// Perform 04-channel verification
	if err := k.ChannelKeeper.ChanOpenConfirm(ctx, msg.PortId, msg.ChannelId, msg.ProofAck, msg.ProofHeight); err != nil {
		k.logger.Error("channel open confirm failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, errorsmod.Wrap(err, "channel handshake open confirm failed")
	}

	// Retrieve application callbacks from router
	cbs, err := k.PortKeeper.Route(ctx, msg.PortId)
	if err != nil {
		k.logger.Error("channel open confirm failed", "port-id", msg.PortId, "error", err.Error())
		return nil, err
	}

	// Perform application logic callback
	if err := cbs.OnChanOpenConfirm(ctx, msg.PortId, msg.ChannelId); err != nil {
		k.logger.Error("channel handshake open confirm callback failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, errorsmod.Wrapf(err, "channel open confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenConfirmChannel(ctx, msg.PortId, msg.ChannelId)

	k.logger.Info("channel open confirm callback succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelOpenConfirmResponse{}, nil
}
