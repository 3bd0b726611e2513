package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry keeps one Store per workspace, created on first use
type Registry struct {
	mu        sync.Mutex
	logger    *zap.Logger
	snapshots Snapshotter
	stores    map[string]*Store
}

// NewRegistry creates an empty registry. snap may be nil to keep workspaces in memory only.
func NewRegistry(logger *zap.Logger, snap Snapshotter) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger:    logger,
		snapshots: snap,
		stores:    make(map[string]*Store),
	}
}

// Get returns the workspace's store, restoring its last snapshot the first time it is loaded
func (r *Registry) Get(ctx context.Context, workspace string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[workspace]; ok {
		return s, nil
	}

	logger := r.logger.With(zap.String("workspace", workspace))
	var opts []Option
	if r.snapshots != nil {
		opts = append(opts, WithSnapshotter(r.snapshots, workspace))
	}
	s := New(logger, opts...)
	s.workspace = workspace

	restored, err := s.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if restored {
		logger.Info("Restored workspace snapshot")
	}

	r.stores[workspace] = s
	return s, nil
}

// Workspaces lists the loaded workspace ids
func (r *Registry) Workspaces() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.stores))
	for id := range r.stores {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
