// Package config provides unified configuration loading for netspread.
// It supports loading from YAML files and environment variables, and
// enforces the valid input ranges for a generation/simulation run.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all parameters for one generation/simulation run.
type Config struct {
	// Network contains the graph synthesis parameters.
	Network NetworkConfig `json:"network" yaml:"network"`

	// Geo contains the geographical-variant parameters. Ignored unless
	// Geo.Enabled is true.
	Geo GeoConfig `json:"geo" yaml:"geo"`

	// Timing contains the propagation timing model parameters.
	Timing TimingConfig `json:"timing" yaml:"timing"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// NetworkConfig configures graph synthesis.
type NetworkConfig struct {
	// TotalNodes is the number of nodes to generate. Range: 10-10000.
	TotalNodes int `json:"total_nodes" yaml:"total_nodes"`

	// ConnectionsPerNode is the target degree per node. Must be >= 2
	// and < TotalNodes. Also the per-node degree cap during synthesis.
	ConnectionsPerNode int `json:"connections_per_node" yaml:"connections_per_node"`

	// Seed is the integer seed for the deterministic random stream.
	Seed int64 `json:"seed" yaml:"seed"`

	// OriginNode is the node that starts the message. Range: [0, TotalNodes).
	OriginNode int `json:"origin_node" yaml:"origin_node"`
}

// GeoConfig configures the geographical synthesis variant.
type GeoConfig struct {
	// Enabled selects the geographical variant over the ring-lattice one.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxConnectionDistance is the short-connection radius in pixels.
	// Candidates beyond 20x this distance are excluded unless bridging
	// is enabled. Must be positive.
	MaxConnectionDistance float64 `json:"max_connection_distance" yaml:"max_connection_distance"`

	// DistanceWeight is the exponent applied to the distance falloff of
	// short-connection acceptance probability. Must be non-negative.
	DistanceWeight float64 `json:"distance_weight" yaml:"distance_weight"`

	// LongDistancePercentage is the share of each node's connection
	// budget given to long-distance candidates. Range: 0-100.
	LongDistancePercentage float64 `json:"long_distance_percentage" yaml:"long_distance_percentage"`

	// BridgingEnabled removes the long-distance cutoff so any two nodes
	// are eligible candidates regardless of distance.
	BridgingEnabled bool `json:"bridging_enabled" yaml:"bridging_enabled"`
}

// TimingConfig configures the propagation timing model. All values are in
// milliseconds and must be non-negative.
type TimingConfig struct {
	// ProcessingTime is the per-step message processing cost.
	ProcessingTime float64 `json:"processing_time" yaml:"processing_time"`

	// NetworkLatency is the per-step transmission cost.
	NetworkLatency float64 `json:"network_latency" yaml:"network_latency"`

	// DiagnosticDelay is the single return-trip delay added to each
	// confirmation's creation time.
	DiagnosticDelay float64 `json:"diagnostic_delay" yaml:"diagnostic_delay"`

	// DiagnosticsEnabled controls confirmation arrival-time processing.
	DiagnosticsEnabled bool `json:"diagnostics_enabled" yaml:"diagnostics_enabled"`
}

// LoggingConfig configures netspread's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables run tracing to trace.jsonl; "trace" additionally
	// includes per-step propagation snapshots.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults: the medium network from
// the reference analysis runs (100 nodes, degree 20, seed 42).
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			TotalNodes:         100,
			ConnectionsPerNode: 20,
			Seed:               42,
			OriginNode:         0,
		},
		Geo: GeoConfig{
			Enabled:                false,
			MaxConnectionDistance:  150,
			DistanceWeight:         0.7,
			LongDistancePercentage: 20,
			BridgingEnabled:        false,
		},
		Timing: TimingConfig{
			ProcessingTime:     1.0,
			NetworkLatency:     5.0,
			DiagnosticDelay:    5.0,
			DiagnosticsEnabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from an optional file path and environment
// variables. Order: defaults -> file -> environment variables.
// An empty path skips the file stage.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid. A non-nil error is a
// configuration error in the run taxonomy: the caller must abort before
// any generation state is touched.
func (c *Config) Validate() error {
	if c.Network.TotalNodes < 10 || c.Network.TotalNodes > 10000 {
		return fmt.Errorf("total_nodes must be between 10 and 10000, got %d", c.Network.TotalNodes)
	}

	if c.Network.ConnectionsPerNode < 2 {
		return fmt.Errorf("connections_per_node must be at least 2, got %d", c.Network.ConnectionsPerNode)
	}

	if c.Network.ConnectionsPerNode >= c.Network.TotalNodes {
		return fmt.Errorf("connections_per_node must be less than total_nodes (%d), got %d",
			c.Network.TotalNodes, c.Network.ConnectionsPerNode)
	}

	if c.Network.OriginNode < 0 || c.Network.OriginNode >= c.Network.TotalNodes {
		return fmt.Errorf("origin_node must be in [0, %d), got %d", c.Network.TotalNodes, c.Network.OriginNode)
	}

	if c.Geo.Enabled {
		if c.Geo.MaxConnectionDistance <= 0 {
			return fmt.Errorf("max_connection_distance must be positive, got %f", c.Geo.MaxConnectionDistance)
		}
		if c.Geo.DistanceWeight < 0 {
			return fmt.Errorf("distance_weight must be non-negative, got %f", c.Geo.DistanceWeight)
		}
		if c.Geo.LongDistancePercentage < 0 || c.Geo.LongDistancePercentage > 100 {
			return fmt.Errorf("long_distance_percentage must be between 0 and 100, got %f", c.Geo.LongDistancePercentage)
		}
	}

	if c.Timing.ProcessingTime < 0 {
		return fmt.Errorf("processing_time must be non-negative, got %f", c.Timing.ProcessingTime)
	}
	if c.Timing.NetworkLatency < 0 {
		return fmt.Errorf("network_latency must be non-negative, got %f", c.Timing.NetworkLatency)
	}
	if c.Timing.DiagnosticDelay < 0 {
		return fmt.Errorf("diagnostic_delay must be non-negative, got %f", c.Timing.DiagnosticDelay)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("NETSPREAD_TOTAL_NODES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Network.TotalNodes = n
		}
	}

	if v := os.Getenv("NETSPREAD_CONNECTIONS_PER_NODE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Network.ConnectionsPerNode = n
		}
	}

	if v := os.Getenv("NETSPREAD_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Network.Seed = n
		}
	}

	if v := os.Getenv("NETSPREAD_ORIGIN_NODE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Network.OriginNode = n
		}
	}

	if v := os.Getenv("NETSPREAD_GEO_ENABLED"); v != "" {
		config.Geo.Enabled = v == "true" || v == "1"
	}

	if v := os.Getenv("NETSPREAD_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
