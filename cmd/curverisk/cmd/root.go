// Package cmd wires the curverisk subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openquant/creditcurve/internal/logging"
)

var (
	flagFormat  string
	flagVerbose bool
	flagFx      []string
)

var rootCmd = &cobra.Command{
	Use:   "curverisk",
	Short: "Bucketed credit-curve sensitivities from the command line",
	Long: `curverisk evaluates credit discount curves and aggregates point
sensitivities into per-parameter (bucketed) sensitivities, one vector per
curve. Curves and sensitivities are read from a JSON input file.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := logging.DefaultConfig()
		if flagVerbose {
			cfg.Level = "debug"
		}
		return logging.Initialize(cfg)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringArrayVar(&flagFx, "fx", nil, "extra FX rate as PAIR=RATE, e.g. USD/EUR=0.92 (repeatable)")
}
