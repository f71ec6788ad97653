// Package session owns the current generation/simulation run. Exactly one
// run exists at a time: a new generation replaces the previous Network,
// steps and confirmations wholesale, and concurrent generate/simulate calls
// are rejected rather than queued.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/glucoxe/netspread/internal/config"
	"github.com/glucoxe/netspread/internal/graph"
	"github.com/glucoxe/netspread/internal/logging"
	"github.com/glucoxe/netspread/internal/propagation"
	"github.com/glucoxe/netspread/internal/rng"
)

// ErrRunInProgress is returned when a generate or simulate call arrives
// while another one is still executing.
var ErrRunInProgress = errors.New("session: a generation or simulation is already in progress")

// ErrNoNetwork is returned by Simulate when no network has been generated.
var ErrNoNetwork = errors.New("session: no network generated yet")

// Run is the complete state of one generation (and optional simulation).
type Run struct {
	Config  config.Config       `json:"config"`
	Network *graph.Network      `json:"network"`
	Report  *graph.Report       `json:"report"`
	Result  *propagation.Result `json:"result,omitempty"`
}

// Session serializes runs. All methods are safe for concurrent use; only
// one generation/simulation can be in flight at a time.
type Session struct {
	logger *slog.Logger
	trace  *logging.TraceLogger

	mu   sync.Mutex
	busy bool
	run  *Run
}

// New creates a session. The trace logger may be nil.
func New(logger *slog.Logger, trace *logging.TraceLogger) *Session {
	return &Session{logger: logger, trace: trace}
}

// acquire marks the session busy, or reports ErrRunInProgress.
func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrRunInProgress
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Generate validates the configuration, builds a fresh network and replaces
// the current run. Configuration errors abort before any prior state is
// discarded.
func (s *Session) Generate(cfg *config.Config) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	variant := graph.VariantLattice
	if cfg.Geo.Enabled {
		variant = graph.VariantGeo
	}

	stream := rng.New(cfg.Network.Seed)
	net, report, err := graph.Generate(graph.Params{
		TotalNodes:         cfg.Network.TotalNodes,
		ConnectionsPerNode: cfg.Network.ConnectionsPerNode,
		Variant:            variant,
		Geo: graph.GeoOptions{
			MaxConnectionDistance:  cfg.Geo.MaxConnectionDistance,
			DistanceWeight:         cfg.Geo.DistanceWeight,
			LongDistancePercentage: cfg.Geo.LongDistancePercentage,
			BridgingEnabled:        cfg.Geo.BridgingEnabled,
		},
	}, stream, s.logger, s.trace)
	if err != nil {
		return nil, err
	}

	run := &Run{Config: *cfg, Network: net, Report: report}

	s.mu.Lock()
	s.run = run
	s.mu.Unlock()

	return run, nil
}

// Simulate runs propagation over the current run's network. The current run
// is replaced by a copy carrying the result; runs already handed out are
// never written to, so holders of a prior *Run see a stable value.
func (s *Session) Simulate() (*Run, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	s.mu.Lock()
	run := s.run
	s.mu.Unlock()
	if run == nil {
		return nil, ErrNoNetwork
	}

	result, err := propagation.Simulate(run.Network, propagation.Params{
		Origin:             run.Config.Network.OriginNode,
		ProcessingTime:     run.Config.Timing.ProcessingTime,
		NetworkLatency:     run.Config.Timing.NetworkLatency,
		DiagnosticDelay:    run.Config.Timing.DiagnosticDelay,
		DiagnosticsEnabled: run.Config.Timing.DiagnosticsEnabled,
	}, s.logger, s.trace)
	if err != nil {
		return nil, err
	}

	updated := &Run{
		Config:  run.Config,
		Network: run.Network,
		Report:  run.Report,
		Result:  result,
	}

	// The busy flag serializes Generate/Simulate, so run is still current.
	s.mu.Lock()
	s.run = updated
	s.mu.Unlock()

	return updated, nil
}

// Current returns the current run, or nil before the first generation.
func (s *Session) Current() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run
}
