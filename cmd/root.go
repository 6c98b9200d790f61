package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/egoavara/rau/internal/config"
	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/rau"
	"github.com/egoavara/rau/internal/version"
)

var (
	verbose   bool
	debugMode bool

	rootCmd = &cobra.Command{
		Use:           "rau",
		Short:         "Remote application updater",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version.Version,
		Long: `rau checks a remote update service for a newer release,
asks before installing it, replaces the running binary and restarts.

Commands:
  check    Check for an update and install it
  config   Manage configuration
  version  Print the version information`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := debug.Init(debugMode); err != nil {
				return err
			}
			return config.Initialize("")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			debug.Close()
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+rau.FormatError(err))
		debug.Close()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "write a debug log to ~/.config/rau/debug.log")
	rootCmd.SetVersionTemplate("rau {{.Version}}\n")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
