package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wolfsheep",
		Short: "Wolf Sheep Predation simulation",
		Long: `wolfsheep runs the Wolf Sheep Predation agent-based model headless.

Use 'run' to simulate a fixed number of ticks, 'tune' to search for
parameters that keep both populations alive, and 'sweep' to score a grid
of parameter combinations.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML file with model parameters")
	rootCmd.PersistentFlags().StringArray("set", nil, "parameter override in key=value form (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newTuneCmd(),
		newSweepCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wolfsheep version %s\n", version)
		},
	}
}
