// Package cmd implements the eclipse-ibc command line driver. It hosts one
// chain's IBC state in a home directory and moves handshakes forward by
// generating datagrams against one home and submitting them to another.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagHome     = "home"
	flagChainID  = "chain-id"
	flagLogLevel = "log-level"
	flagOutput   = "output"
	flagMetrics  = "metrics"

	envPrefix = "ECLIPSE_IBC"
)

// DefaultHome is the home directory used when --home is not given.
var DefaultHome = defaultHome()

func defaultHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".eclipse-ibc"
	}
	return filepath.Join(userHome, ".eclipse-ibc")
}

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	ctx := &Context{Viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "eclipse-ibc",
		Short:        "Drive IBC client, connection and channel handshakes on an eclipse chain",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.Load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.ReportMetrics(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultHome, "directory holding config.toml and the chain data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error|disabled)")
	rootCmd.PersistentFlags().StringP(flagOutput, "o", OutputJSON, "output format (json|yaml)")
	rootCmd.PersistentFlags().Bool(flagMetrics, false, "collect telemetry in memory and print the counters on exit")

	rootCmd.AddCommand(
		adminCmd(ctx),
		generateCmd(ctx),
		txCmd(ctx),
		queryCmd(ctx),
	)

	return rootCmd
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
