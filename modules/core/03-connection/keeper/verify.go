package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
)

// VerifyConnectionState verifies a proof of the connection state of the
// specified connection end stored on the target machine.
func (k *Keeper) VerifyConnectionState(
	ctx context.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	connectionID string,
	counterpartyConnection types.ConnectionEnd, // opposite connection
) error {
	clientID := connection.GetClientID()
	merklePath := commitmenttypes.NewMerklePath(host.ConnectionKey(connectionID))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.GetPrefix(), merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, counterpartyConnection.Marshal()); err != nil {
		return wrapVerificationError(err, "failed connection state verification for client (%s), connection (%s)", clientID, connectionID)
	}

	return nil
}

// VerifyChannelState verifies a proof of the channel state of the specified
// channel end, under the specified port, stored on the target machine.
func (k *Keeper) VerifyChannelState(
	ctx context.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	channelBz []byte,
) error {
	clientID := connection.GetClientID()
	merklePath := commitmenttypes.NewMerklePath(host.ChannelKey(portID, channelID))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.GetPrefix(), merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, channelBz); err != nil {
		return wrapVerificationError(err, "failed channel state verification for client (%s), port (%s), channel (%s)", clientID, portID, channelID)
	}

	return nil
}

// wrapVerificationError reports proof failures as ErrProofVerificationFailed while
// client failures (not found, frozen, missing consensus state) keep their own type.
func wrapVerificationError(err error, format string, args ...interface{}) error {
	if commitmenttypes.IsProofError(err) {
		return errorsmod.Wrapf(commitmenttypes.ErrProofVerificationFailed, format+": %s", append(args, err)...)
	}
	return errorsmod.Wrapf(err, format, args...)
}
