package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/permsearch/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "permsearch",
	Short: "Local search for permutation problems",
	Long: `permsearch solves TSP instances with simulated annealing or randomized
neighborhood search, using incremental move deltas, and prints a result table.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
}

// newLogger builds the process logger from the persistent flags.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
		return logging.NewJSON(level), nil
	}

	return logging.New(level), nil
}
