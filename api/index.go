package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/roster-config-api/pkg/app"
	"github.com/arnavshah/roster-config-api/pkg/config"
	"github.com/arnavshah/roster-config-api/pkg/logging"
)

var (
	r       *gin.Engine
	initErr error
)

func init() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		initErr = err
		return
	}

	r, _, initErr = app.Build(cfg, logger)
	if initErr != nil {
		logger.Error("Could not start service", zap.Error(initErr))
	}
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	if initErr != nil {
		http.Error(w, `{"error":"service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	r.ServeHTTP(w, req)
}
