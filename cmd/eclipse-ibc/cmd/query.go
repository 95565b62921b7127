package cmd

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	"github.com/eclipse-ibc/eclipse-ibc-go/internal/validate"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
)

type identifiedClientState struct {
	ClientId    string               `json:"client_id" yaml:"client_id"` //nolint:revive
	ClientState exported.ClientState `json:"client_state" yaml:"client_state"`
	Status      exported.Status      `json:"status" yaml:"status"`
}

type clientConnections struct {
	ClientId        string   `json:"client_id" yaml:"client_id"` //nolint:revive
	ConnectionPaths []string `json:"connection_paths" yaml:"connection_paths"`
}

type portBinding struct {
	PortId string `json:"port_id" yaml:"port_id"` //nolint:revive
	Module string `json:"module" yaml:"module"`
}

type channelSequences struct {
	NextSequenceSend uint64 `json:"next_sequence_send" yaml:"next_sequence_send"`
	NextSequenceRecv uint64 `json:"next_sequence_recv" yaml:"next_sequence_recv"`
	NextSequenceAck  uint64 `json:"next_sequence_ack" yaml:"next_sequence_ack"`
}

type proofResult struct {
	Path        string             `json:"path" yaml:"path"`
	Value       []byte             `json:"value" yaml:"value"`
	Proof       []byte             `json:"proof" yaml:"proof"`
	ProofHeight clienttypes.Height `json:"proof_height" yaml:"proof_height"`
}

func queryCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query the IBC state of the chain in the home directory",
	}

	cmd.AddCommand(
		queryClientStateCmd(ctx),
		queryClientsCmd(ctx),
		queryConsensusStateCmd(ctx),
		queryConsensusHeightsCmd(ctx),
		queryConnectionCmd(ctx),
		queryConnectionsCmd(ctx),
		queryClientConnectionsCmd(ctx),
		queryChannelCmd(ctx),
		queryChannelsCmd(ctx),
		querySequencesCmd(ctx),
		queryPortCmd(ctx),
		queryHeaderCmd(ctx),
		queryProofCmd(ctx),
	)

	return cmd
}

func queryClientStateCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "client-state [client-id]",
		Short: "Query a client state and its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				clientKeeper := app.GetIBCKeeper().ClientKeeper
				clientState, found := clientKeeper.GetClientState(app.Context(), args[0])
				if !found {
					return errorsmod.Wrap(clienttypes.ErrClientNotFound, args[0])
				}

				return ctx.print(cmd.OutOrStdout(), identifiedClientState{
					ClientId:    args[0],
					ClientState: clientState,
					Status:      clientKeeper.GetClientStatus(app.Context(), args[0]),
				})
			})
		},
	}
}

func queryClientsCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "Query all client states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				clientKeeper := app.GetIBCKeeper().ClientKeeper

				clients := []identifiedClientState{}
				clientKeeper.IterateClientStates(app.Context(), func(clientID string, clientState exported.ClientState) bool {
					clients = append(clients, identifiedClientState{
						ClientId:    clientID,
						ClientState: clientState,
						Status:      clientKeeper.GetClientStatus(app.Context(), clientID),
					})
					return false
				})

				return ctx.print(cmd.OutOrStdout(), clients)
			})
		},
	}
}

func queryConsensusStateCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "consensus-state [client-id] [height]",
		Short: "Query the consensus state of a client at a height ({revision}-{height})",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := clienttypes.ParseHeight(args[1])
			if err != nil {
				return err
			}

			return ctx.WithApp(func(app *simapp.SimApp) error {
				consensusState, found := app.GetIBCKeeper().ClientKeeper.GetClientConsensusState(app.Context(), args[0], height)
				if !found {
					return errorsmod.Wrapf(clienttypes.ErrConsensusStateNotFound, "client-id: %s, height: %s", args[0], height)
				}

				return ctx.print(cmd.OutOrStdout(), consensusState)
			})
		},
	}
}

func queryConsensusHeightsCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "consensus-heights [client-id]",
		Short: "Query the heights of all consensus states stored for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				heights := app.GetIBCKeeper().ClientKeeper.GetConsensusStateHeights(app.Context(), args[0])
				return ctx.print(cmd.OutOrStdout(), heights)
			})
		},
	}
}

func queryConnectionCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "connection [connection-id]",
		Short: "Query a connection end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				connection, found := app.GetIBCKeeper().ConnectionKeeper.GetConnection(app.Context(), args[0])
				if !found {
					return errorsmod.Wrap(connectiontypes.ErrConnectionNotFound, args[0])
				}

				return ctx.print(cmd.OutOrStdout(), connection)
			})
		},
	}
}

func queryConnectionsCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "connections",
		Short: "Query all connection ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				connections := app.GetIBCKeeper().ConnectionKeeper.GetAllConnections(app.Context())
				if connections == nil {
					connections = []connectiontypes.IdentifiedConnection{}
				}
				return ctx.print(cmd.OutOrStdout(), connections)
			})
		},
	}
}

func queryClientConnectionsCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "client-connections [client-id]",
		Short: "Query the connections built on a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				paths, found := app.GetIBCKeeper().ConnectionKeeper.GetClientConnectionPaths(app.Context(), args[0])
				if !found {
					return errorsmod.Wrapf(connectiontypes.ErrClientConnectionPathsNotFound, "client-id: %s", args[0])
				}

				return ctx.print(cmd.OutOrStdout(), clientConnections{ClientId: args[0], ConnectionPaths: paths})
			})
		},
	}
}

func queryChannelCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "channel [port-id] [channel-id]",
		Short: "Query a channel end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.PortChannel(args[0], args[1]); err != nil {
				return err
			}

			return ctx.WithApp(func(app *simapp.SimApp) error {
				channel, found := app.GetIBCKeeper().ChannelKeeper.GetChannel(app.Context(), args[0], args[1])
				if !found {
					return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port-id: %s, channel-id: %s", args[0], args[1])
				}

				return ctx.print(cmd.OutOrStdout(), channel)
			})
		},
	}
}

func queryChannelsCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "Query all channel ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				channels := app.GetIBCKeeper().ChannelKeeper.GetAllChannels(app.Context())
				if channels == nil {
					channels = []channeltypes.IdentifiedChannel{}
				}
				return ctx.print(cmd.OutOrStdout(), channels)
			})
		},
	}
}

func querySequencesCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "sequences [port-id] [channel-id]",
		Short: "Query the next packet sequences of a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.PortChannel(args[0], args[1]); err != nil {
				return err
			}

			return ctx.WithApp(func(app *simapp.SimApp) error {
				channelKeeper := app.GetIBCKeeper().ChannelKeeper
				portID, channelID := args[0], args[1]

				var (
					seqs  channelSequences
					found bool
				)
				if seqs.NextSequenceSend, found = channelKeeper.GetNextSequenceSend(app.Context(), portID, channelID); !found {
					return errorsmod.Wrapf(channeltypes.ErrSequenceSendNotFound, "port-id: %s, channel-id: %s", portID, channelID)
				}
				if seqs.NextSequenceRecv, found = channelKeeper.GetNextSequenceRecv(app.Context(), portID, channelID); !found {
					return errorsmod.Wrapf(channeltypes.ErrSequenceReceiveNotFound, "port-id: %s, channel-id: %s", portID, channelID)
				}
				if seqs.NextSequenceAck, found = channelKeeper.GetNextSequenceAck(app.Context(), portID, channelID); !found {
					return errorsmod.Wrapf(channeltypes.ErrSequenceAckNotFound, "port-id: %s, channel-id: %s", portID, channelID)
				}

				return ctx.print(cmd.OutOrStdout(), seqs)
			})
		},
	}
}

func queryPortCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "port [port-id]",
		Short: "Query the module a port is bound to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				module, found := app.GetIBCKeeper().PortKeeper.LookupModuleByPort(app.Context(), args[0])
				if !found {
					return errorsmod.Wrap(porttypes.ErrPortNotBound, args[0])
				}

				return ctx.print(cmd.OutOrStdout(), portBinding{PortId: args[0], Module: module})
			})
		},
	}
}

func queryHeaderCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "header [height]",
		Short: "Query the header committed at a block height, or the latest one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				if len(args) == 0 {
					header, err := app.LastHeader()
					if err != nil {
						return err
					}
					return ctx.print(cmd.OutOrStdout(), header)
				}

				height, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return errorsmod.Wrapf(ibcerrors.ErrInvalidHeight, "%s: %v", args[0], err)
				}

				header, found := app.GetHeader(height)
				if !found {
					return errorsmod.Wrapf(ibcerrors.ErrNotFound, "no header committed at height %d", height)
				}
				return ctx.print(cmd.OutOrStdout(), header)
			})
		},
	}
}

func queryProofCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proof [path]",
		Short: "Query the value stored under a known IBC path with its merkle proof",
		Long: "Proves a path such as connections/connection-0 or channelEnds/ports/mock/channels/channel-0 " +
			"against the header at --height, or the latest header. An absent path yields a proof of absence.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := host.ParsePath(args[0])
			if err != nil {
				return err
			}
			height, _ := cmd.Flags().GetInt64(flagHeight)

			return ctx.WithApp(func(app *simapp.SimApp) error {
				if height == 0 {
					header, err := app.LastHeader()
					if err != nil {
						return err
					}
					height = int64(header.Height.RevisionHeight)
				}

				value, proof, err := app.QueryProof(host.PathKey(path), height)
				if err != nil {
					return err
				}

				return ctx.print(cmd.OutOrStdout(), proofResult{
					Path:        path.String(),
					Value:       value,
					Proof:       proof,
					ProofHeight: clienttypes.NewHeight(0, uint64(height)),
				})
			})
		},
	}

	cmd.Flags().Int64(flagHeight, 0, "block height to prove at, defaults to the latest")

	return cmd
}
