package cmd

import (
	"io"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	ibctypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
	"github.com/eclipse-ibc/eclipse-ibc-go/testing/mock"
)

const (
	flagClientID             = "client-id"
	flagCounterpartyClientID = "counterparty-client-id"
	flagConnectionID         = "connection-id"
	flagDelayPeriod          = "delay-period"
	flagPortID               = "port-id"
	flagChannelID            = "channel-id"
	flagCounterpartyPortID   = "counterparty-port-id"
	flagVersion              = "version"
	flagOrdering             = "ordering"
	flagModule               = "module"
	flagHeight               = "height"
)

func generateCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate datagrams from the state of the chain in the home directory",
		Long: "Generate reads the chain in the home directory and prints a JSON datagram to be " +
			"submitted with the matching tx command against the counterparty chain. Proofs are " +
			"taken at the latest committed height, so the counterparty client must first be " +
			"updated with the datagram of generate client update.",
	}

	clientCmd := &cobra.Command{Use: "client", Short: "Light client datagrams"}
	clientCmd.AddCommand(genCreateClientCmd(ctx), genUpdateClientCmd(ctx))

	connectionCmd := &cobra.Command{Use: "connection", Short: "Connection handshake datagrams"}
	connectionCmd.AddCommand(
		genConnOpenInitCmd(ctx),
		genConnOpenTryCmd(ctx),
		genConnOpenAckCmd(ctx),
		genConnOpenConfirmCmd(ctx),
	)

	portCmd := &cobra.Command{Use: "port", Short: "Port datagrams"}
	portCmd.AddCommand(genBindPortCmd(ctx), genReleasePortCmd(ctx))

	channelCmd := &cobra.Command{Use: "channel", Short: "Channel handshake datagrams"}
	channelCmd.AddCommand(
		genChanOpenInitCmd(ctx),
		genChanOpenTryCmd(ctx),
		genChanOpenAckCmd(ctx),
		genChanOpenConfirmCmd(ctx),
	)

	cmd.AddCommand(clientCmd, connectionCmd, portCmd, channelCmd)

	return cmd
}

// printDatagram validates msg and prints it wrapped in a datagram.
func printDatagram(w io.Writer, msg ibctypes.Msg) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	datagram, err := ibctypes.NewDatagram(msg)
	if err != nil {
		return err
	}

	return printOutput(w, OutputJSON, datagram)
}

// latestProof proves key against the latest committed header of app.
func latestProof(app *simapp.SimApp, key []byte) ([]byte, clienttypes.Height, error) {
	header, err := app.LastHeader()
	if err != nil {
		return nil, clienttypes.ZeroHeight(), err
	}

	_, proof, err := app.QueryProof(key, int64(header.Height.RevisionHeight))
	if err != nil {
		return nil, clienttypes.ZeroHeight(), err
	}

	return proof, header.Height, nil
}

func commitmentPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix([]byte(exported.StoreKey))
}

func genCreateClientCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Generate a create client datagram tracking this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				header, err := app.LastHeader()
				if err != nil {
					return err
				}

				clientState := eclipse.NewClientState(app.ChainID(), *header)
				clientStateAny, err := clienttypes.PackAny(clientState)
				if err != nil {
					return err
				}
				consensusStateAny, err := clienttypes.PackAny(header.ConsensusState())
				if err != nil {
					return err
				}

				return printDatagram(cmd.OutOrStdout(), clienttypes.NewMsgCreateClient(clientStateAny, consensusStateAny))
			})
		},
	}
}

func genUpdateClientCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Generate an update datagram for the counterparty client tracking this chain",
		Long: "Generates an update with the latest committed header, or with the header at " +
			"--height. Submitting a header that conflicts with one the client already stored " +
			"freezes the client.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientID, _ := cmd.Flags().GetString(flagClientID)
			height, _ := cmd.Flags().GetInt64(flagHeight)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				var header *eclipse.Header
				if height > 0 {
					var found bool
					header, found = app.GetHeader(height)
					if !found {
						return errorsmod.Wrapf(ibcerrors.ErrNotFound, "no header committed at height %d", height)
					}
				} else {
					var err error
					if header, err = app.LastHeader(); err != nil {
						return err
					}
				}

				headerAny, err := clienttypes.PackAny(header)
				if err != nil {
					return err
				}

				return printDatagram(cmd.OutOrStdout(), clienttypes.NewMsgUpdateClient(clientID, headerAny))
			})
		},
	}

	cmd.Flags().String(flagClientID, "", "client on the counterparty chain tracking this chain")
	cmd.Flags().Int64(flagHeight, 0, "height of the header to submit, defaults to the latest")
	_ = cmd.MarkFlagRequired(flagClientID)

	return cmd
}

func genConnOpenInitCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-init",
		Short: "Generate a connection open init datagram",
		Long: "Generates the datagram starting a connection handshake on this chain. It only " +
			"carries identifiers, so no state is read.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientID, _ := cmd.Flags().GetString(flagClientID)
			counterpartyClientID, _ := cmd.Flags().GetString(flagCounterpartyClientID)
			delayPeriod, _ := cmd.Flags().GetUint64(flagDelayPeriod)

			msg := connectiontypes.NewMsgConnectionOpenInit(clientID, counterpartyClientID, commitmentPrefix(), nil, delayPeriod)
			return printDatagram(cmd.OutOrStdout(), msg)
		},
	}

	cmd.Flags().String(flagClientID, "", "client on this chain tracking the counterparty")
	cmd.Flags().String(flagCounterpartyClientID, "", "client on the counterparty tracking this chain")
	cmd.Flags().Uint64(flagDelayPeriod, 0, "connection delay period in nanoseconds")
	_ = cmd.MarkFlagRequired(flagClientID)
	_ = cmd.MarkFlagRequired(flagCounterpartyClientID)

	return cmd
}

func genConnOpenTryCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-try",
		Short: "Generate a connection open try datagram from an INIT connection on this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connectionID, _ := cmd.Flags().GetString(flagConnectionID)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				connection, err := expectConnection(app, connectionID, connectiontypes.INIT)
				if err != nil {
					return err
				}

				proof, proofHeight, err := latestProof(app, host.ConnectionKey(connectionID))
				if err != nil {
					return err
				}

				msg := connectiontypes.NewMsgConnectionOpenTry(
					connection.Counterparty.ClientId, connectionID, connection.ClientId, commitmentPrefix(),
					connection.Versions, connection.DelayPeriod, proof, proofHeight,
				)
				return printDatagram(cmd.OutOrStdout(), msg)
			})
		},
	}

	cmd.Flags().String(flagConnectionID, "", "INIT connection on this chain")
	_ = cmd.MarkFlagRequired(flagConnectionID)

	return cmd
}

func genConnOpenAckCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-ack",
		Short: "Generate a connection open ack datagram from a TRYOPEN connection on this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connectionID, _ := cmd.Flags().GetString(flagConnectionID)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				connection, err := expectConnection(app, connectionID, connectiontypes.TRYOPEN)
				if err != nil {
					return err
				}

				proof, proofHeight, err := latestProof(app, host.ConnectionKey(connectionID))
				if err != nil {
					return err
				}

				msg := connectiontypes.NewMsgConnectionOpenAck(
					connection.Counterparty.ConnectionId, connectionID, proof, proofHeight, connection.Versions[0],
				)
				return printDatagram(cmd.OutOrStdout(), msg)
			})
		},
	}

	cmd.Flags().String(flagConnectionID, "", "TRYOPEN connection on this chain")
	_ = cmd.MarkFlagRequired(flagConnectionID)

	return cmd
}

func genConnOpenConfirmCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-confirm",
		Short: "Generate a connection open confirm datagram from an OPEN connection on this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connectionID, _ := cmd.Flags().GetString(flagConnectionID)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				connection, err := expectConnection(app, connectionID, connectiontypes.OPEN)
				if err != nil {
					return err
				}

				proof, proofHeight, err := latestProof(app, host.ConnectionKey(connectionID))
				if err != nil {
					return err
				}

				msg := connectiontypes.NewMsgConnectionOpenConfirm(connection.Counterparty.ConnectionId, proof, proofHeight)
				return printDatagram(cmd.OutOrStdout(), msg)
			})
		},
	}

	cmd.Flags().String(flagConnectionID, "", "OPEN connection on this chain")
	_ = cmd.MarkFlagRequired(flagConnectionID)

	return cmd
}

func genBindPortCmd(*Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Generate a datagram binding a port to an application module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			module, _ := cmd.Flags().GetString(flagModule)

			return printDatagram(cmd.OutOrStdout(), porttypes.NewMsgBindPort(portID, module))
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port to bind")
	cmd.Flags().String(flagModule, mock.ModuleName, "application module owning the port")

	return cmd
}

func genReleasePortCmd(*Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Generate a datagram releasing a port owned by an application module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			module, _ := cmd.Flags().GetString(flagModule)

			return printDatagram(cmd.OutOrStdout(), porttypes.NewMsgReleasePort(portID, module))
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port to release")
	cmd.Flags().String(flagModule, mock.ModuleName, "application module owning the port")

	return cmd
}

func genChanOpenInitCmd(*Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-init",
		Short: "Generate a channel open init datagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			connectionID, _ := cmd.Flags().GetString(flagConnectionID)
			counterpartyPortID, _ := cmd.Flags().GetString(flagCounterpartyPortID)
			version, _ := cmd.Flags().GetString(flagVersion)
			ordering, _ := cmd.Flags().GetString(flagOrdering)

			var order channeltypes.Order
			if err := order.UnmarshalText([]byte(ordering)); err != nil {
				return err
			}

			msg := channeltypes.NewMsgChannelOpenInit(portID, version, order, []string{connectionID}, counterpartyPortID)
			return printDatagram(cmd.OutOrStdout(), msg)
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port on this chain")
	cmd.Flags().String(flagConnectionID, "", "connection on this chain the channel is built on")
	cmd.Flags().String(flagCounterpartyPortID, mock.PortID, "port on the counterparty chain")
	cmd.Flags().String(flagVersion, "", "proposed application version, chosen by the application when empty")
	cmd.Flags().String(flagOrdering, "unordered", "channel ordering (ordered|unordered)")
	_ = cmd.MarkFlagRequired(flagConnectionID)

	return cmd
}

func genChanOpenTryCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-try",
		Short: "Generate a channel open try datagram from an INIT channel on this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			channelID, _ := cmd.Flags().GetString(flagChannelID)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				channel, err := expectChannel(app, portID, channelID, channeltypes.INIT)
				if err != nil {
					return err
				}

				connection, found := app.GetIBCKeeper().ConnectionKeeper.GetConnection(app.Context(), channel.ConnectionHops[0])
				if !found {
					return errorsmod.Wrap(connectiontypes.ErrConnectionNotFound, channel.ConnectionHops[0])
				}

				proof, proofHeight, err := latestProof(app, host.ChannelKey(portID, channelID))
				if err != nil {
					return err
				}

				msg := channeltypes.NewMsgChannelOpenTry(
					channel.Counterparty.PortId, channel.Version, channel.Ordering,
					[]string{connection.Counterparty.ConnectionId},
					portID, channelID, channel.Version, proof, proofHeight,
				)
				return printDatagram(cmd.OutOrStdout(), msg)
			})
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port on this chain")
	cmd.Flags().String(flagChannelID, "", "INIT channel on this chain")
	_ = cmd.MarkFlagRequired(flagChannelID)

	return cmd
}

func genChanOpenAckCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-ack",
		Short: "Generate a channel open ack datagram from a TRYOPEN channel on this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			channelID, _ := cmd.Flags().GetString(flagChannelID)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				channel, err := expectChannel(app, portID, channelID, channeltypes.TRYOPEN)
				if err != nil {
					return err
				}

				proof, proofHeight, err := latestProof(app, host.ChannelKey(portID, channelID))
				if err != nil {
					return err
				}

				msg := channeltypes.NewMsgChannelOpenAck(
					channel.Counterparty.PortId, channel.Counterparty.ChannelId, channelID,
					channel.Version, proof, proofHeight,
				)
				return printDatagram(cmd.OutOrStdout(), msg)
			})
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port on this chain")
	cmd.Flags().String(flagChannelID, "", "TRYOPEN channel on this chain")
	_ = cmd.MarkFlagRequired(flagChannelID)

	return cmd
}

func genChanOpenConfirmCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-confirm",
		Short: "Generate a channel open confirm datagram from an OPEN channel on this chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			channelID, _ := cmd.Flags().GetString(flagChannelID)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				channel, err := expectChannel(app, portID, channelID, channeltypes.OPEN)
				if err != nil {
					return err
				}

				proof, proofHeight, err := latestProof(app, host.ChannelKey(portID, channelID))
				if err != nil {
					return err
				}

				msg := channeltypes.NewMsgChannelOpenConfirm(
					channel.Counterparty.PortId, channel.Counterparty.ChannelId, proof, proofHeight,
				)
				return printDatagram(cmd.OutOrStdout(), msg)
			})
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port on this chain")
	cmd.Flags().String(flagChannelID, "", "OPEN channel on this chain")
	_ = cmd.MarkFlagRequired(flagChannelID)

	return cmd
}

func expectConnection(app *simapp.SimApp, connectionID string, state connectiontypes.State) (connectiontypes.ConnectionEnd, error) {
	connection, found := app.GetIBCKeeper().ConnectionKeeper.GetConnection(app.Context(), connectionID)
	if !found {
		return connectiontypes.ConnectionEnd{}, errorsmod.Wrap(connectiontypes.ErrConnectionNotFound, connectionID)
	}
	if connection.State != state {
		return connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(
			connectiontypes.ErrInvalidConnectionState,
			"connection %s is in state %s, expected %s", connectionID, connection.State, state,
		)
	}
	return connection, nil
}

func expectChannel(app *simapp.SimApp, portID, channelID string, state channeltypes.State) (channeltypes.Channel, error) {
	channel, found := app.GetIBCKeeper().ChannelKeeper.GetChannel(app.Context(), portID, channelID)
	if !found {
		return channeltypes.Channel{}, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port-id: %s, channel-id: %s", portID, channelID)
	}
	if channel.State != state {
		return channeltypes.Channel{}, errorsmod.Wrapf(
			channeltypes.ErrInvalidChannelState,
			"channel %s/%s is in state %s, expected %s", portID, channelID, channel.State, state,
		)
	}
	return channel, nil
}
