package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tilepad/twitch-inspector/internal/channel"
	"github.com/tilepad/twitch-inspector/internal/config"
	"github.com/tilepad/twitch-inspector/internal/discovery"
	"github.com/tilepad/twitch-inspector/internal/display"
	"github.com/tilepad/twitch-inspector/internal/hostsim"
	"github.com/tilepad/twitch-inspector/internal/inspector"
	"github.com/tilepad/twitch-inspector/internal/protocol"
	"github.com/tilepad/twitch-inspector/internal/tiles"
	"github.com/tilepad/twitch-inspector/internal/urls"
)

// Command flags
var (
	endpoint    string
	pluginID    string
	scanTimeout int

	simAddr   string
	simAction string
	simState  string
	simDelay  int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Inspector WebSocket endpoint (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&pluginID, "plugin-id", "", "Plugin identifier (default from config)")

	rootCmd.AddCommand(displayCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(nicknameCmd)
	rootCmd.AddCommand(simulateCmd)
}

// resolveEndpoint picks the inspector endpoint: the --endpoint flag if
// given, otherwise the first host found via mDNS discovery.
func resolveEndpoint(registry *config.Registry) (string, error) {
	if endpoint != "" {
		return endpoint, nil
	}

	plugin := pluginID
	if plugin == "" {
		plugin = registry.PluginID()
	}

	timeout := time.Duration(registry.Preferences.DiscoverTimeout) * time.Second
	if timeout <= 0 {
		timeout = discovery.DefaultScanTimeout
	}

	fmt.Printf("Discovering Tilepad hosts (timeout: %s)...\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	scanner := discovery.NewScanner()
	scanner.Timeout = timeout

	host, err := scanner.FirstHost(ctx)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w (use --endpoint to connect directly)", err)
	}

	registry.UpdateHostLastSeen(host.Name, host.IP, host.Port)
	if err := registry.Save(); err != nil {
		// Not fatal; the session can continue without the bookmark.
		fmt.Printf("Warning: could not save host registry: %v\n", err)
	}

	fmt.Printf("Found %s\n", host)
	return host.Endpoint(plugin), nil
}

// requireTerminal rejects running the full-screen views with stdout
// redirected.
func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("this command needs an interactive terminal")
	}
	return nil
}

// connect dials the endpoint and wraps the channel in a tile store.
func connect() (*channel.Client, *tiles.RemoteStore, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, err
	}

	target, err := resolveEndpoint(registry)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := channel.Dial(ctx, target)
	if err != nil {
		return nil, nil, err
	}

	return client, tiles.NewRemoteStore(client), nil
}

// runInspector is the default command: the interactive tile
// configuration view.
func runInspector(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	client, store, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	model := inspector.New(store, client, store.Events())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("inspector failed: %w", err)
	}
	return nil
}

// displayCmd shows the live viewer count full-screen.
var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Show the live Twitch viewer count",
	Long: `Show the live Twitch viewer count as large block digits.

The count is polled from the plugin backend every two seconds and
rendered at the largest size that fits the terminal.`,
	Example: `  # Discover a host and show the viewer count
  tilepad-inspector display

  # Connect to a specific endpoint
  tilepad-inspector display --endpoint ws://192.168.1.20:59372/plugin/com.tilepad.twitch/inspector`,
	RunE: runDisplay,
}

func runDisplay(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	client, store, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	model := display.New(client, store.Events(), registry.PollInterval())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("display failed: %w", err)
	}
	return nil
}

// scanCmd discovers Tilepad hosts on the network.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Tilepad hosts on the network",
	Long: `Scan for Tilepad hosts using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from Tilepad hosts and displays
all discovered hosts with their addresses and metadata.`,
	Example: `  # Scan with the default 5 second timeout
  tilepad-inspector scan

  # Longer scan for slow networks
  tilepad-inspector scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Tilepad hosts (timeout: %ds)...\n\n", scanTimeout)

	hosts, err := discovery.ScanForHosts(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(hosts) == 0 {
		fmt.Println("No hosts found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure Tilepad is running on a machine in this network")
		fmt.Println("  - Check that mDNS traffic is not blocked by a firewall")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --endpoint to connect directly if discovery fails")
		fmt.Printf("  - See %s\n", urls.Troubleshooting)
		return nil
	}

	registry, regErr := config.LoadRegistry()

	fmt.Printf("Found %d host(s):\n\n", len(hosts))
	for i, host := range hosts {
		fmt.Printf("%d. %s\n", i+1, host.Name)
		if regErr == nil {
			if known := registry.GetHost(host.Name); known != nil && known.Nickname != "" {
				fmt.Printf("   Nickname: %s\n", known.Nickname)
			}
		}
		fmt.Printf("   Address: %s:%d\n", host.IP, host.Port)
		if v := host.GetMetadata("version"); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		if len(host.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", host.Metadata)
		}
		fmt.Println()

		if regErr == nil {
			registry.UpdateHostLastSeen(host.Name, host.IP, host.Port)
		}
	}

	if regErr == nil {
		if err := registry.Save(); err != nil {
			fmt.Printf("Warning: could not save host registry: %v\n", err)
		}
	}

	fmt.Println("Use 'tilepad-inspector --endpoint <url>' to connect to a host")
	return nil
}

// nicknameCmd gives a discovered host a friendly name.
var nicknameCmd = &cobra.Command{
	Use:   "nickname <host> <nickname>",
	Short: "Set a friendly name for a known host",
	Long: `Set a user-friendly nickname for a host in the local registry.

The host is identified by its mDNS instance name as printed by
'tilepad-inspector scan'. The nickname is shown alongside the host in
future scans.`,
	Example: `  tilepad-inspector nickname "Tilepad (studio-pc)" "Studio"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runNickname,
}

func runNickname(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	registry.SetHostNickname(args[0], args[1])
	if err := registry.Save(); err != nil {
		return err
	}

	fmt.Printf("Host %q is now %q\n", args[0], args[1])
	return nil
}

// simulateCmd runs a local plugin backend for development.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a local plugin backend simulator",
	Long: `Run a local WebSocket server that simulates the Twitch plugin backend.

The simulator answers tile, state and property requests for a single
simulated tile, walks through the authorization flow on request, and
pushes property changes to all connected inspectors. Useful for
developing against the inspector without a running Tilepad host.`,
	Example: `  # Simulate a send_message tile on the default address
  tilepad-inspector simulate

  # Simulate an ad_break tile that is already authenticated
  tilepad-inspector simulate --tile ad_break --state AUTHENTICATED

  # Then connect with:
  tilepad-inspector --endpoint ws://127.0.0.1:59372/`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simAddr, "addr", "127.0.0.1:59372", "Address to listen on")
	simulateCmd.Flags().StringVar(&simAction, "tile", "send_message", "Action id of the simulated tile")
	simulateCmd.Flags().StringVar(&simState, "state", "NOT_AUTHENTICATED", "Initial connection state")
	simulateCmd.Flags().IntVar(&simDelay, "auth-delay", 1, "Simulated authorization delay in seconds")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	state := protocol.ConnectionState(simState)
	if !state.Known() {
		return fmt.Errorf("unknown state %q (want LOADING, NOT_AUTHENTICATED or AUTHENTICATED)", simState)
	}

	sim := hostsim.New(hostsim.Config{
		InitialState: state,
		ActionID:     simAction,
		AuthDelay:    time.Duration(simDelay) * time.Second,
	})

	fmt.Printf("Simulating %q tile on ws://%s/ (state: %s)\n", simAction, simAddr, state)
	fmt.Println("Press ctrl+c to stop.")

	return sim.ListenAndServe(simAddr)
}
