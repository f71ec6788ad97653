package main

import (
	"fmt"
	"os"

	"github.com/glucoxe/netspread/internal/session"
	"github.com/glucoxe/netspread/internal/visualization"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a network as DOT or JSON",
		Long: `Synthesize a network and export it for visualization.

DOT output can be rendered with Graphviz:
  netspread export --format dot | neato -Tsvg -o network.svg

With --simulate, nodes are colored by their final propagation state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			simulate, _ := cmd.Flags().GetBool("simulate")

			if format != "dot" && format != "json" {
				return fmt.Errorf("unknown format %q (must be dot or json)", format)
			}

			logger := newRunLogger(cfg)
			sess := session.New(logger, nil)
			run, err := sess.Generate(cfg)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			if simulate {
				run, err = sess.Simulate()
				if err != nil {
					return fmt.Errorf("simulation failed: %w", err)
				}
			}

			var rendered string
			switch format {
			case "dot":
				rendered = visualization.RenderDOT(run.Network, run.Config.Network.OriginNode, run.Result)
			case "json":
				rendered, err = visualization.RenderJSON(run.Network, run.Result)
				if err != nil {
					return fmt.Errorf("failed to render JSON: %w", err)
				}
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(rendered), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", format, out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	addNetworkFlags(cmd)
	cmd.Flags().String("format", "dot", "Export format (dot, json)")
	cmd.Flags().String("out", "", "Write output to this file instead of stdout")
	cmd.Flags().Bool("simulate", false, "Run a simulation and color nodes by final state")

	return cmd
}
