package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/glucoxe/netspread/internal/config"
	"github.com/glucoxe/netspread/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "netspread",
		Short: "Network synthesis and propagation simulator",
		Long: `netspread synthesizes small-world and geographical networks and
simulates wave-based propagation through them.

Networks are generated deterministically from a seed, so every run with
the same configuration reproduces the same topology and the same
propagation timeline.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newSimulateCmd(),
		newStatsCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				fmt.Fprintf(cmd.OutOrStdout(), "{\"version\":%q}\n", version)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "netspread version %s\n", version)
			}
		},
	}
}

// loadConfig builds the effective configuration for a command: defaults,
// then the optional config file, then flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("nodes") {
		n, _ := cmd.Flags().GetInt("nodes")
		cfg.Network.TotalNodes = n
	}
	if cmd.Flags().Changed("connections") {
		c, _ := cmd.Flags().GetInt("connections")
		cfg.Network.ConnectionsPerNode = c
	}
	if cmd.Flags().Changed("seed") {
		s, _ := cmd.Flags().GetInt64("seed")
		cfg.Network.Seed = s
	}
	if cmd.Flags().Changed("origin") {
		o, _ := cmd.Flags().GetInt("origin")
		cfg.Network.OriginNode = o
	}
	if cmd.Flags().Changed("geo") {
		g, _ := cmd.Flags().GetBool("geo")
		cfg.Geo.Enabled = g
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newRunLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// addNetworkFlags registers the flags shared by every command that
// synthesizes a network.
func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().Int("nodes", 0, "Total number of nodes")
	cmd.Flags().Int("connections", 0, "Target connections per node")
	cmd.Flags().Int64("seed", 0, "RNG seed")
	cmd.Flags().Int("origin", 0, "Origin node for propagation")
	cmd.Flags().Bool("geo", false, "Use geographical synthesis instead of ring lattice")
}
