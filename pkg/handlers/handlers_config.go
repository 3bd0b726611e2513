package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/roster-config-api/pkg/presets"
)

// GetConfig returns the workspace's human-facing config and its derived state
func (h *Handler) GetConfig(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"config":  s.Config(),
		"derived": s.Derived(),
	})
}

// ImportConfig replaces the whole config with the request body. A malformed body leaves the config untouched.
func (h *Handler) ImportConfig(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not read body"})
		return
	}

	if err := s.Import(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"success": true})
}

// ExportConfig downloads the normalized config as JSON
func (h *Handler) ExportConfig(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}

	data, err := s.Export()
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=roster-config.json")
	c.Data(http.StatusOK, "application/json", data)
}

// GetNormalized returns the normalized config inline
func (h *Handler) GetNormalized(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Normalized())
}

// ResetConfig restores the default config
func (h *Handler) ResetConfig(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	s.Reset()
	h.Logger.Info("Config reset", zap.String("workspace", s.Workspace()))
	h.saved(c, s, http.StatusOK, gin.H{"config": s.Config()})
}

// ListPresets returns the preset catalog
func (h *Handler) ListPresets(c *gin.Context) {
	list, err := presets.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": list})
}

// LoadPreset overlays a named preset onto the workspace's config
func (h *Handler) LoadPreset(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	name := c.Param("name")
	if err := s.LoadPreset(name); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"preset": name, "config": s.Config()})
}
