package cmd

import (
	"encoding/json"
	"io"
	"os"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	ibctypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
	"github.com/eclipse-ibc/eclipse-ibc-go/testing/mock"
)

// txResult is printed after a message is committed.
type txResult struct {
	Height   clienttypes.Height `json:"height" yaml:"height"`
	Response any                `json:"response" yaml:"response"`
}

func txCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Submit datagrams to the chain in the home directory",
		Long: "Each command reads a datagram produced by the matching generate command from the " +
			"given file, or from stdin when no file or - is given, and commits it in a new block.",
	}

	clientCmd := &cobra.Command{Use: "client", Short: "Submit light client datagrams"}
	clientCmd.AddCommand(
		submitCmd(ctx, "create", "Create a light client of the counterparty chain", ibctypes.TypeCreateClient),
		submitCmd(ctx, "update", "Update a light client with a counterparty header", ibctypes.TypeUpdateClient),
	)

	connectionCmd := &cobra.Command{Use: "connection", Short: "Submit connection handshake datagrams"}
	connectionCmd.AddCommand(
		submitCmd(ctx, "open-init", "Start a connection handshake", ibctypes.TypeConnectionOpenInit),
		submitCmd(ctx, "open-try", "Answer a connection handshake started on the counterparty", ibctypes.TypeConnectionOpenTry),
		submitCmd(ctx, "open-ack", "Open a connection acknowledged by the counterparty", ibctypes.TypeConnectionOpenAck),
		submitCmd(ctx, "open-confirm", "Open a connection confirmed by the counterparty", ibctypes.TypeConnectionOpenConfirm),
	)

	portCmd := &cobra.Command{Use: "port", Short: "Submit port datagrams"}
	portCmd.AddCommand(
		txPortCmd(ctx, "bind", "Bind a port to an application module", func(portID, module string) ibctypes.Msg {
			return porttypes.NewMsgBindPort(portID, module)
		}),
		txPortCmd(ctx, "release", "Release a port owned by an application module", func(portID, module string) ibctypes.Msg {
			return porttypes.NewMsgReleasePort(portID, module)
		}),
	)

	channelCmd := &cobra.Command{Use: "channel", Short: "Submit channel handshake datagrams"}
	channelCmd.AddCommand(
		submitCmd(ctx, "open-init", "Start a channel handshake", ibctypes.TypeChannelOpenInit),
		submitCmd(ctx, "open-try", "Answer a channel handshake started on the counterparty", ibctypes.TypeChannelOpenTry),
		submitCmd(ctx, "open-ack", "Open a channel acknowledged by the counterparty", ibctypes.TypeChannelOpenAck),
		submitCmd(ctx, "open-confirm", "Open a channel confirmed by the counterparty", ibctypes.TypeChannelOpenConfirm),
	)

	cmd.AddCommand(clientCmd, connectionCmd, portCmd, channelCmd)

	return cmd
}

// submitCmd returns a command delivering a datagram of the given type.
func submitCmd(ctx *Context, use, short, datagramType string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [datagram-file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datagram, err := readDatagram(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if datagram.Type != datagramType {
				return errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected a %s datagram, got %s", datagramType, datagram.Type)
			}

			msg, err := datagram.UnpackMsg()
			if err != nil {
				return err
			}

			return ctx.deliver(cmd.OutOrStdout(), msg)
		},
	}
}

// txPortCmd returns a command delivering the port message built by newMsg.
func txPortCmd(ctx *Context, use, short string, newMsg func(portID, module string) ibctypes.Msg) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, _ := cmd.Flags().GetString(flagPortID)
			module, _ := cmd.Flags().GetString(flagModule)

			return ctx.deliver(cmd.OutOrStdout(), newMsg(portID, module))
		},
	}

	cmd.Flags().String(flagPortID, mock.PortID, "port identifier")
	cmd.Flags().String(flagModule, mock.ModuleName, "application module owning the port")

	return cmd
}

func readDatagram(stdin io.Reader, args []string) (ibctypes.Datagram, error) {
	var (
		bz  []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		bz, err = io.ReadAll(stdin)
	} else {
		bz, err = os.ReadFile(args[0])
	}
	if err != nil {
		return ibctypes.Datagram{}, err
	}

	var datagram ibctypes.Datagram
	if err := json.Unmarshal(bz, &datagram); err != nil {
		return ibctypes.Datagram{}, errorsmod.Wrapf(ibcerrors.ErrEncoding, "invalid datagram: %v", err)
	}
	return datagram, nil
}

// deliver commits msg in a new block and prints its response.
func (ctx *Context) deliver(w io.Writer, msg ibctypes.Msg) error {
	return ctx.WithApp(func(app *simapp.SimApp) error {
		res, header, err := app.DeliverMsg(time.Now().UTC(), msg)
		if err != nil {
			if header != nil {
				ctx.Logger.Error("message failed after committing", "height", header.Height.String(), "error", err)
			}
			return err
		}

		return ctx.print(w, txResult{Height: header.Height, Response: res})
	})
}
