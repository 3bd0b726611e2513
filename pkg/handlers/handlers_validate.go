package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-config-api/pkg/conflicts"
	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/schema"
)

// ValidateConfig checks a posted configuration without storing it. An empty body validates the workspace's own config.
func (h *Handler) ValidateConfig(c *gin.Context) {
	var cfg models.HumanConfig
	if c.Request.ContentLength == 0 {
		s, ok := h.workspace(c)
		if !ok {
			return
		}
		cfg = s.Config()
	} else if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	fieldErrs := schema.Validate(cfg)
	items := conflicts.FindAllConflicts(cfg)

	c.JSON(http.StatusOK, gin.H{
		"valid":     len(fieldErrs) == 0 && !conflicts.HasErrors(items),
		"errors":    fieldErrs,
		"conflicts": items,
		"stats": gin.H{
			"role_count":     len(cfg.Roles),
			"interval_count": countIntervals(cfg),
			"employee_count": len(cfg.Employees),
		},
	})
}
