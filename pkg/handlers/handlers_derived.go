package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/roster-config-api/pkg/conflicts"
	"github.com/arnavshah/roster-config-api/pkg/normalize"
	"github.com/arnavshah/roster-config-api/pkg/solver"
)

// GetConflicts returns the conflict list of the current config
func (h *Handler) GetConflicts(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	items := s.Conflicts()
	c.JSON(http.StatusOK, gin.H{
		"conflicts":  items,
		"has_errors": conflicts.HasErrors(items),
	})
}

// GetHealth returns the config health summary
func (h *Handler) GetHealth(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.CoverageHealth())
}

// GetCost returns the weekly labor cost estimate
func (h *Handler) GetCost(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.CostEstimate())
}

// GetDerived returns conflicts, health and cost computed from the same config version
func (h *Handler) GetDerived(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Derived())
}

// GetPreflight lists coverage intervals that cannot be staffed from the current roster
func (h *Handler) GetPreflight(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	gaps := solver.Preflight(s.Normalized())
	c.JSON(http.StatusOK, gin.H{
		"ok":            len(gaps) == 0,
		"coverage_gaps": gaps,
	})
}

// Solve sends the normalized config to the optimizer. Configs with error-level conflicts are refused.
func (h *Handler) Solve(c *gin.Context) {
	if h.Solver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No solver configured"})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}

	cfg := s.Config()
	items := conflicts.FindAllConflicts(cfg)
	if conflicts.HasErrors(items) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Configuration has blocking conflicts",
			"conflicts": items,
		})
		return
	}

	n := normalize.NormalizeHumanConfig(cfg)
	req := solver.BuildRequest(n)
	res, err := h.Solver.Solve(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("Solver request failed", zap.String("workspace", s.Workspace()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Solver request failed", "details": err.Error()})
		return
	}

	h.RecordUsage(c, countIntervals(cfg), len(cfg.Employees))
	c.JSON(http.StatusOK, gin.H{
		"result":    res,
		"preflight": solver.Preflight(n),
		"shifts":    len(req.Shifts),
		"workers":   len(req.Workers),
	})
}
