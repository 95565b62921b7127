package ibctesting

import (
	"github.com/stretchr/testify/require"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	"github.com/eclipse-ibc/eclipse-ibc-go/testing/mock"
)

// Endpoint is one side of a Path: a chain together with the client,
// connection and channel it holds towards the Counterparty endpoint. The
// handshake methods submit messages built from the endpoint's configs and
// record the identifiers the chain hands back.
type Endpoint struct {
	Chain        *TestChain
	Counterparty *Endpoint

	ClientID     string
	ConnectionID string
	ChannelID    string

	ConnectionConfig *ConnectionConfig
	ChannelConfig    *ChannelConfig
}

// NewDefaultEndpoint returns an endpoint on chain with default configs. The
// caller links the counterparty.
func NewDefaultEndpoint(chain *TestChain) *Endpoint {
	return &Endpoint{
		Chain:            chain,
		ConnectionConfig: NewConnectionConfig(),
		ChannelConfig:    NewChannelConfig(),
	}
}

// QueryProof proves key on this endpoint's chain at the height the
// counterparty client has last been updated to.
func (endpoint *Endpoint) QueryProof(key []byte) ([]byte, clienttypes.Height) {
	trusted := endpoint.Counterparty.Chain.GetClientState(endpoint.Counterparty.ClientID).LatestHeight()
	return endpoint.Chain.QueryProofAtHeight(key, int64(trusted.GetRevisionHeight()))
}

// CreateClient creates a client of the counterparty chain, trusting its
// latest header, and records the new client identifier.
func (endpoint *Endpoint) CreateClient() error {
	endpoint.Chain.Coordinator.CommitBlock(endpoint.Counterparty.Chain)

	header := endpoint.Counterparty.Chain.LatestHeader
	clientState := eclipse.NewClientState(endpoint.Counterparty.Chain.ChainID, *header)
	msg := clienttypes.NewMsgCreateClient(
		clienttypes.MustPackAny(clientState), clienttypes.MustPackAny(header.ConsensusState()),
	)

	res, err := endpoint.Chain.SendMsg(msg)
	if err != nil {
		return err
	}

	endpoint.ClientID = res.(*clienttypes.MsgCreateClientResponse).ClientId
	return nil
}

// UpdateClient commits a counterparty block and updates the client to it.
func (endpoint *Endpoint) UpdateClient() error {
	endpoint.Chain.Coordinator.CommitBlock(endpoint.Counterparty.Chain)
	return endpoint.UpdateClientWithHeader(endpoint.Counterparty.Chain.LatestHeader)
}

func (endpoint *Endpoint) UpdateClientWithHeader(header *eclipse.Header) error {
	_, err := endpoint.Chain.SendMsg(clienttypes.NewMsgUpdateClient(endpoint.ClientID, clienttypes.MustPackAny(header)))
	return err
}

// counterpartyProof brings the client up to date with the counterparty, then
// proves key on the counterparty at that height.
func (endpoint *Endpoint) counterpartyProof(key []byte) ([]byte, clienttypes.Height) {
	require.NoError(endpoint.Chain.TB, endpoint.UpdateClient())
	return endpoint.Counterparty.QueryProof(key)
}

func (endpoint *Endpoint) counterpartyConnectionProof() ([]byte, clienttypes.Height) {
	return endpoint.counterpartyProof(host.ConnectionKey(endpoint.Counterparty.ConnectionID))
}

func (endpoint *Endpoint) counterpartyChannelProof() ([]byte, clienttypes.Height) {
	cp := endpoint.Counterparty
	return endpoint.counterpartyProof(host.ChannelKey(cp.ChannelConfig.PortID, cp.ChannelID))
}

func (endpoint *Endpoint) ConnOpenInit() error {
	cp := endpoint.Counterparty
	msg := connectiontypes.NewMsgConnectionOpenInit(
		endpoint.ClientID, cp.ClientID, cp.Chain.GetPrefix(),
		endpoint.ConnectionConfig.Version, endpoint.ConnectionConfig.DelayPeriod,
	)

	res, err := endpoint.Chain.SendMsg(msg)
	if err != nil {
		return err
	}

	endpoint.ConnectionID = res.(*connectiontypes.MsgConnectionOpenInitResponse).ConnectionId
	return nil
}

func (endpoint *Endpoint) ConnOpenTry() error {
	cp := endpoint.Counterparty
	proof, proofHeight := endpoint.counterpartyConnectionProof()
	msg := connectiontypes.NewMsgConnectionOpenTry(
		endpoint.ClientID, cp.ConnectionID, cp.ClientID, cp.Chain.GetPrefix(),
		[]*connectiontypes.Version{ConnectionVersion}, endpoint.ConnectionConfig.DelayPeriod,
		proof, proofHeight,
	)

	res, err := endpoint.Chain.SendMsg(msg)
	if err != nil {
		return err
	}

	if endpoint.ConnectionID == "" {
		endpoint.ConnectionID = res.(*connectiontypes.MsgConnectionOpenTryResponse).ConnectionId
	}
	return nil
}

func (endpoint *Endpoint) ConnOpenAck() error {
	proof, proofHeight := endpoint.counterpartyConnectionProof()
	msg := connectiontypes.NewMsgConnectionOpenAck(
		endpoint.ConnectionID, endpoint.Counterparty.ConnectionID, proof, proofHeight, ConnectionVersion,
	)

	_, err := endpoint.Chain.SendMsg(msg)
	return err
}

func (endpoint *Endpoint) ConnOpenConfirm() error {
	proof, proofHeight := endpoint.counterpartyConnectionProof()
	_, err := endpoint.Chain.SendMsg(connectiontypes.NewMsgConnectionOpenConfirm(endpoint.ConnectionID, proof, proofHeight))
	return err
}

// BindPort binds the endpoint's port to the mock module unless it is bound already.
func (endpoint *Endpoint) BindPort() error {
	portID := endpoint.ChannelConfig.PortID
	if endpoint.Chain.App.GetIBCKeeper().PortKeeper.IsBound(endpoint.Chain.GetContext(), portID) {
		return nil
	}

	_, err := endpoint.Chain.SendMsg(porttypes.NewMsgBindPort(portID, mock.ModuleName))
	return err
}

// ChanOpenInit opens a channel in INIT. The config version is replaced by the
// one the application settled on.
func (endpoint *Endpoint) ChanOpenInit() error {
	cfg := endpoint.ChannelConfig
	msg := channeltypes.NewMsgChannelOpenInit(
		cfg.PortID, cfg.Version, cfg.Order, []string{endpoint.ConnectionID},
		endpoint.Counterparty.ChannelConfig.PortID,
	)

	res, err := endpoint.Chain.SendMsg(msg)
	if err != nil {
		return err
	}

	endpoint.ChannelID = res.(*channeltypes.MsgChannelOpenInitResponse).ChannelId
	cfg.Version = endpoint.GetChannel().Version
	return nil
}

func (endpoint *Endpoint) ChanOpenTry() error {
	cfg, cp := endpoint.ChannelConfig, endpoint.Counterparty
	proof, proofHeight := endpoint.counterpartyChannelProof()
	msg := channeltypes.NewMsgChannelOpenTry(
		cfg.PortID, cfg.Version, cfg.Order, []string{endpoint.ConnectionID},
		cp.ChannelConfig.PortID, cp.ChannelID, cp.ChannelConfig.Version,
		proof, proofHeight,
	)

	res, err := endpoint.Chain.SendMsg(msg)
	if err != nil {
		return err
	}

	if endpoint.ChannelID == "" {
		endpoint.ChannelID = res.(*channeltypes.MsgChannelOpenTryResponse).ChannelId
	}
	cfg.Version = endpoint.GetChannel().Version
	return nil
}

func (endpoint *Endpoint) ChanOpenAck() error {
	cp := endpoint.Counterparty
	proof, proofHeight := endpoint.counterpartyChannelProof()
	msg := channeltypes.NewMsgChannelOpenAck(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID, cp.ChannelID, cp.ChannelConfig.Version,
		proof, proofHeight,
	)

	if _, err := endpoint.Chain.SendMsg(msg); err != nil {
		return err
	}

	endpoint.ChannelConfig.Version = endpoint.GetChannel().Version
	return nil
}

func (endpoint *Endpoint) ChanOpenConfirm() error {
	proof, proofHeight := endpoint.counterpartyChannelProof()
	msg := channeltypes.NewMsgChannelOpenConfirm(endpoint.ChannelConfig.PortID, endpoint.ChannelID, proof, proofHeight)

	_, err := endpoint.Chain.SendMsg(msg)
	return err
}

// The getters below fail the test when the object does not exist.

func (endpoint *Endpoint) GetClientState() *eclipse.ClientState {
	return endpoint.Chain.GetClientState(endpoint.ClientID)
}

func (endpoint *Endpoint) GetConnection() connectiontypes.ConnectionEnd {
	return endpoint.Chain.GetConnection(endpoint.ConnectionID)
}

func (endpoint *Endpoint) GetChannel() channeltypes.Channel {
	return endpoint.Chain.GetChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID)
}

// SetConnection overwrites the endpoint's connection end outside of a block.
func (endpoint *Endpoint) SetConnection(connection connectiontypes.ConnectionEnd) {
	endpoint.Chain.App.GetIBCKeeper().ConnectionKeeper.SetConnection(endpoint.Chain.GetContext(), endpoint.ConnectionID, connection)
}

// SetChannel overwrites the endpoint's channel end outside of a block.
func (endpoint *Endpoint) SetChannel(channel channeltypes.Channel) {
	endpoint.Chain.App.GetIBCKeeper().ChannelKeeper.SetChannel(
		endpoint.Chain.GetContext(), endpoint.ChannelConfig.PortID, endpoint.ChannelID, channel,
	)
}
