package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/internal/telemetry"
)

// ConnOpenInit starts a handshake on the local chain and returns the new
// connection identifier. A nil version proposes every compatible version.
func (k *Keeper) ConnOpenInit(
	ctx context.Context,
	clientID string,
	counterparty types.Counterparty,
	version *types.Version,
	delayPeriod uint64,
) (string, error) {
	versions := types.GetCompatibleVersions()
	if version != nil {
		if !types.IsSupportedVersion(versions, version) {
			return "", errorsmod.Wrapf(types.ErrInvalidVersion, "version %s is not supported", version)
		}
		versions = []*types.Version{version}
	}

	if err := clienttypes.ValidateStatus(k.clientKeeper.GetClientStatus(ctx, clientID), clientID); err != nil {
		return "", err
	}

	connectionID := k.GenerateConnectionIdentifier(ctx)
	if err := k.addConnectionToClient(ctx, clientID, connectionID); err != nil {
		return "", err
	}

	k.SetConnection(ctx, connectionID, types.NewConnectionEnd(types.INIT, clientID, counterparty, versions, delayPeriod))
	k.logTransition(connectionID, types.UNINITIALIZED, types.INIT)
	telemetry.ReportConnectionHandshake("open-init", connectionID)

	return connectionID, nil
}

// ConnOpenTry answers a counterparty ConnOpenInit. initProof must show the
// counterparty end in INIT at proofHeight, pointing at clientID with no
// connection identifier yet.
func (k *Keeper) ConnOpenTry(
	ctx context.Context,
	counterparty types.Counterparty,
	delayPeriod uint64,
	clientID string,
	counterpartyVersions []*types.Version,
	initProof []byte,
	proofHeight exported.Height,
) (string, error) {
	if existingID, existing, found := k.findAnsweredConnection(ctx, clientID, counterparty); found {
		return "", errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"connection (%s) already answered counterparty connection (%s) and is in state %s",
			existingID, counterparty.ConnectionId, existing.State,
		)
	}

	version, err := types.PickVersion(types.GetCompatibleVersions(), counterpartyVersions)
	if err != nil {
		return "", err
	}

	connection := types.NewConnectionEnd(types.TRYOPEN, clientID, counterparty, []*types.Version{version}, delayPeriod)
	expected := types.NewConnectionEnd(
		types.INIT, counterparty.ClientId, k.selfAsCounterparty(clientID, ""), counterpartyVersions, delayPeriod,
	)
	if err := k.VerifyConnectionState(ctx, connection, proofHeight, initProof, counterparty.ConnectionId, expected); err != nil {
		return "", err
	}

	connectionID := k.GenerateConnectionIdentifier(ctx)
	if err := k.addConnectionToClient(ctx, clientID, connectionID); err != nil {
		return "", errorsmod.Wrapf(err, "failed to add connection %s to client %s", connectionID, clientID)
	}

	k.SetConnection(ctx, connectionID, connection)
	k.logTransition(connectionID, types.UNINITIALIZED, types.TRYOPEN)
	telemetry.ReportConnectionHandshake("open-try", connectionID)

	return connectionID, nil
}

// ConnOpenAck opens an INIT connection once tryProof shows the counterparty
// end in TRYOPEN with the selected version.
func (k *Keeper) ConnOpenAck(
	ctx context.Context,
	connectionID string,
	version *types.Version,
	counterpartyConnectionID string,
	tryProof []byte,
	proofHeight exported.Height,
) error {
	connection, _ := k.GetConnection(ctx, connectionID)
	if connection.State != types.INIT {
		return errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"connection (%s) state is not INIT (got %s)", connectionID, connection.State,
		)
	}

	if !types.IsSupportedVersion(connection.Versions, version) {
		return errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"counterparty selected version %s which was not proposed on INIT", version,
		)
	}

	expected := types.NewConnectionEnd(
		types.TRYOPEN, connection.Counterparty.ClientId, k.selfAsCounterparty(connection.ClientId, connectionID),
		[]*types.Version{version}, connection.DelayPeriod,
	)
	if err := k.VerifyConnectionState(ctx, connection, proofHeight, tryProof, counterpartyConnectionID, expected); err != nil {
		return err
	}

	connection.State = types.OPEN
	connection.Versions = []*types.Version{version}
	connection.Counterparty.ConnectionId = counterpartyConnectionID
	k.SetConnection(ctx, connectionID, connection)
	k.logTransition(connectionID, types.INIT, types.OPEN)
	telemetry.ReportConnectionHandshake("open-ack", connectionID)

	return nil
}

// ConnOpenConfirm opens a TRYOPEN connection once ackProof shows the
// counterparty end OPEN.
func (k *Keeper) ConnOpenConfirm(
	ctx context.Context,
	connectionID string,
	ackProof []byte,
	proofHeight exported.Height,
) error {
	connection, _ := k.GetConnection(ctx, connectionID)
	if connection.State != types.TRYOPEN {
		return errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"connection (%s) state is not TRYOPEN (got %s)", connectionID, connection.State,
		)
	}

	expected := types.NewConnectionEnd(
		types.OPEN, connection.Counterparty.ClientId, k.selfAsCounterparty(connection.ClientId, connectionID),
		connection.Versions, connection.DelayPeriod,
	)
	if err := k.VerifyConnectionState(
		ctx, connection, proofHeight, ackProof, connection.Counterparty.ConnectionId, expected,
	); err != nil {
		return err
	}

	connection.State = types.OPEN
	k.SetConnection(ctx, connectionID, connection)
	k.logTransition(connectionID, types.TRYOPEN, types.OPEN)
	telemetry.ReportConnectionHandshake("open-confirm", connectionID)

	return nil
}

// selfAsCounterparty is how the counterparty chain records this chain: our
// client and connection identifiers under our commitment prefix.
func (k *Keeper) selfAsCounterparty(clientID, connectionID string) types.Counterparty {
	return types.NewCounterparty(clientID, connectionID, commitmenttypes.NewMerklePrefix(k.GetCommitmentPrefix().Bytes()))
}

func (k *Keeper) logTransition(connectionID string, from, to types.State) {
	k.Logger().Info("connection state updated", "connection-id", connectionID, "previous-state", from, "new-state", to)
}
