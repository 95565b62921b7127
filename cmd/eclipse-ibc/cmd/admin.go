package cmd

import (
	"time"

	"github.com/spf13/cobra"

	ibctypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
)

func adminCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Chain administration commands",
	}

	cmd.AddCommand(initStorageAccountCmd(ctx))

	return cmd
}

func initStorageAccountCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-storage-account",
		Short: "Initialise the IBC storage of a new chain in the home directory",
		Long: "Creates the chain database in the home directory, commits the first block with " +
			"the default identifier sequences and writes config.toml with the chain id.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.WithApp(func(app *simapp.SimApp) error {
				header, err := app.InitChain(ibctypes.DefaultGenesisState(), time.Now().UTC())
				if err != nil {
					return err
				}

				if err := ctx.WriteConfig(); err != nil {
					return err
				}

				ctx.Logger.Info("initialized storage", "chain-id", app.ChainID(), "home", ctx.Config.Home)
				return ctx.print(cmd.OutOrStdout(), header)
			})
		},
	}

	cmd.Flags().String(flagChainID, "", "identifier of the chain")
	_ = cmd.MarkFlagRequired(flagChainID)

	return cmd
}
