package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glucoxe/netspread/internal/logging"
	"github.com/glucoxe/netspread/internal/session"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Synthesize a network and run a propagation simulation",
		Long: `Synthesize a network, propagate a wave from the origin node and
print the propagation summary.

Every node that receives the wave forwards it to all neighbors in the
next step. Nodes that receive a late duplicate over a longer path stop
forwarding and emit a confirmation.

Example:
  netspread simulate --nodes 200 --origin 0
  netspread simulate --geo --seed 7 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			out, _ := cmd.Flags().GetString("out")
			traceDir, _ := cmd.Flags().GetString("trace-dir")

			logger := newRunLogger(cfg)
			trace := logging.NewTraceLogger(traceDir, cfg.Logging.Level)
			defer trace.Close()

			sess := session.New(logger, trace)
			if _, err := sess.Generate(cfg); err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			run, err := sess.Simulate()
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			if out != "" {
				data, err := json.MarshalIndent(run, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode run: %w", err)
				}
				if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
			}

			sum := run.Result.Summary
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"seed":          run.Config.Network.Seed,
					"origin":        run.Config.Network.OriginNode,
					"summary":       sum,
					"confirmations": len(run.Result.Confirmations),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Propagation from node %d (seed %d):\n\n",
				run.Config.Network.OriginNode, run.Config.Network.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-12s %-10s %-13s %s\n",
				"step", "propagators", "time(ms)", "cumulative", "received")
			total := run.Network.Size()
			for _, step := range run.Result.Steps {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6d %-12d %-10.1f %-13.1f %d/%d\n",
					step.Index, len(step.Propagators), step.StepTime,
					step.CumulativeTime, step.Received+step.Stopped, total)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "  Steps:           %d\n", sum.TotalSteps)
			fmt.Fprintf(cmd.OutOrStdout(), "  Total time:      %.1f ms\n", sum.TotalTime)
			fmt.Fprintf(cmd.OutOrStdout(), "  Avg step time:   %.1f ms\n", sum.AverageStepTime)
			fmt.Fprintf(cmd.OutOrStdout(), "  Max propagators: %d\n", sum.MaxPropagators)
			fmt.Fprintf(cmd.OutOrStdout(), "  Coverage:        %.1f%%\n", sum.Coverage*100)
			fmt.Fprintf(cmd.OutOrStdout(), "  Stopped nodes:   %d\n", sum.StoppedNodes)
			fmt.Fprintf(cmd.OutOrStdout(), "  Efficiency:      %.2f\n", sum.Efficiency)
			if len(run.Result.Confirmations) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Confirmations:   %d\n", len(run.Result.Confirmations))
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nRun written to %s\n", out)
			}
			return nil
		},
	}

	addNetworkFlags(cmd)
	cmd.Flags().String("out", "", "Write the full run as JSON to this file")
	cmd.Flags().String("trace-dir", ".netspread", "Directory for trace.jsonl (debug/trace levels only)")

	return cmd
}
