package main

import (
	"encoding/json"
	"fmt"

	"github.com/glucoxe/netspread/internal/session"
	"github.com/spf13/cobra"
)

// seedStats holds the per-seed results of a sweep.
type seedStats struct {
	Seed          int64   `json:"seed"`
	Edges         int     `json:"edges"`
	MinDegree     int     `json:"min_degree"`
	AverageDegree float64 `json:"average_degree"`
	MaxDegree     int     `json:"max_degree"`
	Density       float64 `json:"density"`
	Connected     bool    `json:"connected"`
	TotalSteps    int     `json:"total_steps"`
	TotalTime     float64 `json:"total_time_ms"`
	Coverage      float64 `json:"coverage_pct"`
	StoppedNodes  int     `json:"stopped_nodes"`
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Sweep seeds and report topology and propagation statistics",
		Long: `Run the full generate+simulate pipeline across consecutive seeds
and report per-seed and aggregate statistics.

Useful for checking how sensitive coverage and step counts are to the
random topology.

Example:
  netspread stats --nodes 200 --seeds 10
  netspread stats --geo --seeds 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			seeds, _ := cmd.Flags().GetInt("seeds")
			if seeds < 1 {
				return fmt.Errorf("--seeds must be at least 1, got %d", seeds)
			}

			logger := newRunLogger(cfg)
			baseSeed := cfg.Network.Seed

			results := make([]seedStats, 0, seeds)
			for i := 0; i < seeds; i++ {
				runCfg := *cfg
				runCfg.Network.Seed = baseSeed + int64(i)

				sess := session.New(logger, nil)
				if _, err := sess.Generate(&runCfg); err != nil {
					return fmt.Errorf("seed %d: generation failed: %w", runCfg.Network.Seed, err)
				}
				run, err := sess.Simulate()
				if err != nil {
					return fmt.Errorf("seed %d: simulation failed: %w", runCfg.Network.Seed, err)
				}

				props := run.Network.Properties()
				sum := run.Result.Summary
				results = append(results, seedStats{
					Seed:          runCfg.Network.Seed,
					Edges:         props.Edges,
					MinDegree:     props.MinDegree,
					AverageDegree: props.AverageDegree,
					MaxDegree:     props.MaxDegree,
					Density:       props.Density,
					Connected:     props.Connected,
					TotalSteps:    sum.TotalSteps,
					TotalTime:     sum.TotalTime,
					Coverage:      sum.Coverage * 100,
					StoppedNodes:  sum.StoppedNodes,
				})
			}

			var avgSteps, avgTime, avgCoverage float64
			for _, r := range results {
				avgSteps += float64(r.TotalSteps)
				avgTime += r.TotalTime
				avgCoverage += r.Coverage
			}
			n := float64(len(results))
			avgSteps /= n
			avgTime /= n
			avgCoverage /= n

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"seeds":        results,
					"avg_steps":    avgSteps,
					"avg_time_ms":  avgTime,
					"avg_coverage": avgCoverage,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seed sweep (%d seeds, %d nodes, %d connections):\n\n",
				seeds, cfg.Network.TotalNodes, cfg.Network.ConnectionsPerNode)
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-7s %-14s %-9s %-10s %-6s %-12s %-9s\n",
				"seed", "edges", "degree", "density", "connected", "steps", "time(ms)", "coverage")
			for _, r := range results {
				degrees := fmt.Sprintf("%d/%.1f/%d", r.MinDegree, r.AverageDegree, r.MaxDegree)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d %-7d %-14s %-9.4f %-10v %-6d %-12.1f %-8.1f%%\n",
					r.Seed, r.Edges, degrees, r.Density, r.Connected, r.TotalSteps, r.TotalTime, r.Coverage)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nAverages: %.1f steps, %.1f ms, %.1f%% coverage\n",
				avgSteps, avgTime, avgCoverage)
			return nil
		},
	}

	addNetworkFlags(cmd)
	cmd.Flags().Int("seeds", 5, "Number of consecutive seeds to sweep")

	return cmd
}
