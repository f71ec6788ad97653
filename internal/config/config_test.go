package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Network.TotalNodes != 100 {
		t.Errorf("TotalNodes = %d, want 100", cfg.Network.TotalNodes)
	}
	if cfg.Network.ConnectionsPerNode != 20 {
		t.Errorf("ConnectionsPerNode = %d, want 20", cfg.Network.ConnectionsPerNode)
	}
	if cfg.Network.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Network.Seed)
	}
	if cfg.Geo.Enabled {
		t.Error("Geo.Enabled should default to false")
	}
	if cfg.Timing.ProcessingTime != 1.0 || cfg.Timing.NetworkLatency != 5.0 {
		t.Errorf("timing defaults = %v/%v, want 1.0/5.0",
			cfg.Timing.ProcessingTime, cfg.Timing.NetworkLatency)
	}
	if !cfg.Timing.DiagnosticsEnabled {
		t.Error("DiagnosticsEnabled should default to true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
		{
			name:    "too few nodes",
			mutate:  func(c *Config) { c.Network.TotalNodes = 9 },
			wantErr: "total_nodes",
		},
		{
			name:    "too many nodes",
			mutate:  func(c *Config) { c.Network.TotalNodes = 10001 },
			wantErr: "total_nodes",
		},
		{
			name:    "connections below minimum",
			mutate:  func(c *Config) { c.Network.ConnectionsPerNode = 1 },
			wantErr: "connections_per_node",
		},
		{
			name: "connections not below node count",
			mutate: func(c *Config) {
				c.Network.TotalNodes = 10
				c.Network.ConnectionsPerNode = 10
			},
			wantErr: "connections_per_node",
		},
		{
			name:    "origin negative",
			mutate:  func(c *Config) { c.Network.OriginNode = -1 },
			wantErr: "origin_node",
		},
		{
			name:    "origin past last node",
			mutate:  func(c *Config) { c.Network.OriginNode = 100 },
			wantErr: "origin_node",
		},
		{
			name: "geo distance non-positive",
			mutate: func(c *Config) {
				c.Geo.Enabled = true
				c.Geo.MaxConnectionDistance = 0
			},
			wantErr: "max_connection_distance",
		},
		{
			name: "geo weight negative",
			mutate: func(c *Config) {
				c.Geo.Enabled = true
				c.Geo.DistanceWeight = -0.1
			},
			wantErr: "distance_weight",
		},
		{
			name: "geo long percentage out of range",
			mutate: func(c *Config) {
				c.Geo.Enabled = true
				c.Geo.LongDistancePercentage = 101
			},
			wantErr: "long_distance_percentage",
		},
		{
			name: "geo ranges ignored when disabled",
			mutate: func(c *Config) {
				c.Geo.Enabled = false
				c.Geo.MaxConnectionDistance = 0
			},
		},
		{
			name:    "negative processing time",
			mutate:  func(c *Config) { c.Timing.ProcessingTime = -1 },
			wantErr: "processing_time",
		},
		{
			name:    "negative latency",
			mutate:  func(c *Config) { c.Timing.NetworkLatency = -1 },
			wantErr: "network_latency",
		},
		{
			name:    "negative diagnostic delay",
			mutate:  func(c *Config) { c.Timing.DiagnosticDelay = -1 },
			wantErr: "diagnostic_delay",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:   "empty log level allowed",
			mutate: func(c *Config) { c.Logging.Level = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netspread.yaml")
	content := `
network:
  total_nodes: 500
  connections_per_node: 8
  seed: 7
geo:
  enabled: true
  max_connection_distance: 200
timing:
  network_latency: 2.5
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Network.TotalNodes != 500 {
		t.Errorf("TotalNodes = %d, want 500", cfg.Network.TotalNodes)
	}
	if cfg.Network.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Network.Seed)
	}
	if !cfg.Geo.Enabled {
		t.Error("Geo.Enabled = false, want true")
	}
	if cfg.Geo.MaxConnectionDistance != 200 {
		t.Errorf("MaxConnectionDistance = %v, want 200", cfg.Geo.MaxConnectionDistance)
	}
	if cfg.Timing.NetworkLatency != 2.5 {
		t.Errorf("NetworkLatency = %v, want 2.5", cfg.Timing.NetworkLatency)
	}
	// Unset fields keep their defaults.
	if cfg.Timing.ProcessingTime != 1.0 {
		t.Errorf("ProcessingTime = %v, want default 1.0", cfg.Timing.ProcessingTime)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFromFile on missing file returned nil error")
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.TotalNodes != 100 {
		t.Errorf("TotalNodes = %d, want default 100", cfg.Network.TotalNodes)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NETSPREAD_TOTAL_NODES", "250")
	t.Setenv("NETSPREAD_CONNECTIONS_PER_NODE", "6")
	t.Setenv("NETSPREAD_SEED", "1234")
	t.Setenv("NETSPREAD_ORIGIN_NODE", "17")
	t.Setenv("NETSPREAD_GEO_ENABLED", "true")
	t.Setenv("NETSPREAD_LOG_LEVEL", "trace")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Network.TotalNodes != 250 {
		t.Errorf("TotalNodes = %d, want 250", cfg.Network.TotalNodes)
	}
	if cfg.Network.ConnectionsPerNode != 6 {
		t.Errorf("ConnectionsPerNode = %d, want 6", cfg.Network.ConnectionsPerNode)
	}
	if cfg.Network.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", cfg.Network.Seed)
	}
	if cfg.Network.OriginNode != 17 {
		t.Errorf("OriginNode = %d, want 17", cfg.Network.OriginNode)
	}
	if !cfg.Geo.Enabled {
		t.Error("Geo.Enabled = false, want true")
	}
	if cfg.Logging.Level != "trace" {
		t.Errorf("Level = %q, want trace", cfg.Logging.Level)
	}
}

func TestEnvOverridesIgnoreMalformed(t *testing.T) {
	t.Setenv("NETSPREAD_TOTAL_NODES", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.TotalNodes != 100 {
		t.Errorf("TotalNodes = %d, want default 100 on malformed override", cfg.Network.TotalNodes)
	}
}
