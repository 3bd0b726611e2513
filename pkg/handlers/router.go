package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-config-api/pkg/logging"
)

// NewRouter wires every route onto a gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(h.Logger), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "roster-config-api",
			"docs":    "/api/presets",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/admin/login", h.Login)
	admin := r.Group("/admin", h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.GET("/workspaces", h.ListWorkspaces)
	}

	api := r.Group("/api", h.APIKeyMiddleware())
	{
		api.GET("/config", h.GetConfig)
		api.PUT("/config", h.ImportConfig)
		api.GET("/config/export", h.ExportConfig)
		api.GET("/config/normalized", h.GetNormalized)
		api.POST("/config/reset", h.ResetConfig)
		api.POST("/config/presets/:name", h.LoadPreset)
		api.POST("/config/validate", h.ValidateConfig)
		api.GET("/presets", h.ListPresets)

		api.PUT("/business-hours/:day", h.SetBusinessHours)
		api.POST("/roles", h.AddRole)
		api.DELETE("/roles/:role", h.RemoveRole)

		api.POST("/coverage/:role/:day", h.AddCoverage)
		api.POST("/coverage/:role/:day/duplicate", h.DuplicateDay)
		api.PATCH("/coverage/:role/:day/:id", h.UpdateCoverage)
		api.DELETE("/coverage/:role/:day/:id", h.RemoveCoverage)

		api.POST("/employees", h.AddEmployee)
		api.PATCH("/employees/:id", h.UpdateEmployee)
		api.DELETE("/employees/:id", h.RemoveEmployee)

		api.PATCH("/rules/hard", h.SetHardRules)
		api.PATCH("/rules/soft", h.SetSoftRules)
		api.PATCH("/budget", h.SetBudget)

		api.GET("/conflicts", h.GetConflicts)
		api.GET("/health", h.GetHealth)
		api.GET("/cost", h.GetCost)
		api.GET("/derived", h.GetDerived)
		api.GET("/preflight", h.GetPreflight)
		api.POST("/solve", h.Solve)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
