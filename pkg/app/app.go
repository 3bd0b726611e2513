// Package app assembles the HTTP service from its configuration.
package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/roster-config-api/pkg/auth"
	"github.com/arnavshah/roster-config-api/pkg/config"
	"github.com/arnavshah/roster-config-api/pkg/database"
	"github.com/arnavshah/roster-config-api/pkg/handlers"
	"github.com/arnavshah/roster-config-api/pkg/solver"
	"github.com/arnavshah/roster-config-api/pkg/store"
)

// SnapshotTTL is how long redis keeps an untouched workspace
const SnapshotTTL = 30 * 24 * time.Hour

// Build opens the database, picks the snapshot backend and returns the router.
// The returned cleanup closes any connections Build opened.
func Build(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, nil, err
	}

	authSvc := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret, 0)
	if err := authSvc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword, logger); err != nil {
		return nil, nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	cleanup := func() {}
	var snaps store.Snapshotter
	switch cfg.SnapshotBackend {
	case config.SnapshotDatabase:
		snaps = &database.GormSnapshots{DB: db}
	case config.SnapshotRedis:
		client, err := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		snaps = &database.RedisSnapshots{Client: client, TTL: SnapshotTTL}
		cleanup = func() { _ = client.Close() }
	case config.SnapshotNone:
		logger.Warn("Workspace snapshots disabled, configs live in memory only")
	}

	h := &handlers.Handler{
		DB:     db,
		Auth:   authSvc,
		Stores: store.NewRegistry(logger, snaps),
		Logger: logger,
	}
	if cfg.SolverURL != "" {
		h.Solver = solver.NewHTTPSolver(cfg.SolverURL, cfg.SolverTimeout(), logger)
	} else {
		logger.Info("SOLVER_URL not set, /api/solve is disabled")
	}

	logger.Info("Service assembled",
		zap.String("snapshots", cfg.SnapshotBackend),
		zap.Bool("postgres", cfg.DatabaseURL != ""),
		zap.Bool("solver", h.Solver != nil))

	return handlers.NewRouter(h), cleanup, nil
}
