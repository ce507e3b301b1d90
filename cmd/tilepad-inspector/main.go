// Tilepad-inspector is a terminal client for the Tilepad Twitch plugin.
//
// It connects to a Tilepad host's plugin inspector endpoint over
// WebSocket and provides an interactive configuration view for the
// active tile, a live viewer count display, mDNS host discovery, and
// a local backend simulator for development.
//
// Usage:
//
//	tilepad-inspector [command] [flags]
//
// Running without arguments launches the interactive inspector.
// See 'tilepad-inspector --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tilepad/twitch-inspector/internal/logging"
	"github.com/tilepad/twitch-inspector/internal/urls"
	"github.com/tilepad/twitch-inspector/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilepad-inspector",
	Short: "Tilepad Twitch Plugin Inspector",
	Long: `A terminal client for the Tilepad Twitch plugin.

Connects to a Tilepad host's plugin inspector endpoint and provides an
interactive configuration view for the active tile. Hosts are found via
mDNS discovery, or specified directly with --endpoint.

If no command is specified, the interactive inspector will launch.

Getting started: ` + urls.GettingStarted,
	Version: version.Version,
	RunE:    runInspector,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tilepad-inspector %s (commit: %s)\n", version.Version, version.Commit)
	},
}
