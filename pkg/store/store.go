// Package store owns a live HumanConfig and keeps its conflicts, health and cost in step with it.
//
// Every mutation runs under a write lock and recomputes the derived results before the lock is
// released, so a reader never sees results computed against an older config.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/arnavshah/roster-config-api/pkg/conflicts"
	"github.com/arnavshah/roster-config-api/pkg/estimate"
	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/normalize"
)

var (
	ErrUnknownDay       = errors.New("unknown day")
	ErrRoleNotFound     = errors.New("role not found")
	ErrIntervalNotFound = errors.New("coverage interval not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmptyRoleName    = errors.New("role name is empty")
)

// Snapshotter persists a workspace's config as JSON. Load reports found=false when nothing was saved.
type Snapshotter interface {
	Save(ctx context.Context, workspace string, data []byte) error
	Load(ctx context.Context, workspace string) (data []byte, found bool, err error)
}

// Derived is the set of results computed from one config version
type Derived struct {
	Version        uint64                `json:"version"`
	Conflicts      []models.ConflictItem `json:"conflicts"`
	CoverageHealth models.CoverageHealth `json:"coverageHealth"`
	CostEstimate   models.CostEstimate   `json:"costEstimate"`
}

// Store holds one workspace's configuration
type Store struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	cfg     models.HumanConfig
	derived Derived
	version uint64

	lastImportErr error

	snapshots Snapshotter
	workspace string
}

// Option configures a Store
type Option func(*Store)

// WithConfig starts the store from cfg instead of the defaults
func WithConfig(cfg models.HumanConfig) Option {
	return func(s *Store) {
		s.cfg = cfg.Clone()
	}
}

// WithSnapshotter enables Persist and Restore for the given workspace
func WithSnapshotter(snap Snapshotter, workspace string) Option {
	return func(s *Store) {
		s.snapshots = snap
		s.workspace = workspace
	}
}

// New creates a store with the default configuration and computes its derived results
func New(logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		logger: logger,
		cfg:    models.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute()
	return s
}

// recompute must be called with the write lock held
func (s *Store) recompute() {
	d := Derived{
		Version:        s.version,
		Conflicts:      conflicts.FindAllConflicts(s.cfg),
		CoverageHealth: estimate.CalculateCoverageHealth(s.cfg),
		CostEstimate:   estimate.EstimateLaborCost(s.cfg),
	}
	s.derived = d

	s.logger.Debug("Recomputed derived state",
		zap.String("workspace", s.workspace),
		zap.Uint64("version", d.Version),
		zap.Int("conflicts", len(d.Conflicts)),
		zap.Int("health", d.CoverageHealth.Score),
		zap.Float64("cost", d.CostEstimate.Total),
	)
}

// commit bumps the version and recomputes. Callers hold the write lock.
func (s *Store) commit() {
	s.version++
	s.recompute()
}

// Workspace returns the id the store persists under
func (s *Store) Workspace() string {
	return s.workspace
}

// Config returns a deep copy of the live configuration
func (s *Store) Config() models.HumanConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Version returns the number of mutations applied so far
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Conflicts returns the conflicts of the current config
func (s *Store) Conflicts() []models.ConflictItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ConflictItem{}, s.derived.Conflicts...)
}

// CoverageHealth returns the health score of the current config
func (s *Store) CoverageHealth() models.CoverageHealth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived.CoverageHealth
}

// CostEstimate returns the floor labor cost of the current config
func (s *Store) CostEstimate() models.CostEstimate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCost(s.derived.CostEstimate)
}

// Derived returns conflicts, health and cost computed from the same config version
func (s *Store) Derived() Derived {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.derived
	d.Conflicts = append([]models.ConflictItem{}, d.Conflicts...)
	d.CostEstimate = copyCost(d.CostEstimate)
	return d
}

// Normalized returns the solver-ready form of the current config
func (s *Store) Normalized() models.NormalizedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return normalize.NormalizeHumanConfig(s.cfg)
}

// Export returns the normalized config as indented JSON
func (s *Store) Export() ([]byte, error) {
	return json.MarshalIndent(s.Normalized(), "", "  ")
}

// Import replaces the whole config with the decoded JSON document.
// On failure the current config is kept and the error is also available from LastImportError.
func (s *Store) Import(data []byte) error {
	var cfg models.HumanConfig
	err := json.Unmarshal(data, &cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastImportErr = fmt.Errorf("import config: %w", err)
		s.logger.Warn("Failed to import config", zap.String("workspace", s.workspace), zap.Error(err))
		return s.lastImportErr
	}

	s.lastImportErr = nil
	s.cfg = cfg
	s.commit()
	return nil
}

// LastImportError returns the error of the most recent Import, nil when it succeeded
func (s *Store) LastImportError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastImportErr
}

// Persist saves the current config through the snapshotter, if one is configured
func (s *Store) Persist(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	s.mu.RLock()
	data, err := json.Marshal(s.cfg)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.snapshots.Save(ctx, s.workspace, data); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", s.workspace, err)
	}
	return nil
}

// Restore replaces the config with the last saved snapshot. It reports whether one was found.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.snapshots == nil {
		return false, nil
	}
	data, found, err := s.snapshots.Load(ctx, s.workspace)
	if err != nil {
		return false, fmt.Errorf("load snapshot for %s: %w", s.workspace, err)
	}
	if !found {
		return false, nil
	}

	var cfg models.HumanConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return false, fmt.Errorf("decode snapshot for %s: %w", s.workspace, err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.commit()
	s.mu.Unlock()
	return true, nil
}

func copyCost(c models.CostEstimate) models.CostEstimate {
	out := c
	out.ByRole = make(map[string]float64, len(c.ByRole))
	for k, v := range c.ByRole {
		out.ByRole[k] = v
	}
	return out
}
