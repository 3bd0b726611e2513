package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/schema"
	"github.com/arnavshah/roster-config-api/pkg/store"
)

// SetBusinessHours replaces one day's business hours
func (h *Handler) SetBusinessHours(c *gin.Context) {
	var hours models.DayHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := schema.ValidateDayHours(hours); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business hours", "fields": errs})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	day := models.Day(c.Param("day"))
	if err := s.SetBusinessHours(day, hours); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"day": day, "hours": hours})
}

// AddRole adds a role name
func (h *Handler) AddRole(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.AddRole(req.Name); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusCreated, gin.H{"roles": s.Config().Roles})
}

// RemoveRole drops a role and its coverage. Employees keep the role in their lists.
func (h *Handler) RemoveRole(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.RemoveRole(c.Param("role")); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"roles": s.Config().Roles})
}

// AddCoverage appends a coverage interval to a role's day
func (h *Handler) AddCoverage(c *gin.Context) {
	var iv models.CoverageInterval
	if err := c.ShouldBindJSON(&iv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := schema.ValidateInterval(iv); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coverage interval", "fields": errs})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	added, err := s.AddCoverageInterval(c.Param("role"), models.Day(c.Param("day")), iv)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusCreated, gin.H{"interval": added})
}

// UpdateCoverage patches a coverage interval
func (h *Handler) UpdateCoverage(c *gin.Context) {
	var patch store.IntervalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	updated, err := s.UpdateCoverageInterval(c.Param("role"), models.Day(c.Param("day")), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"interval": updated})
}

// RemoveCoverage deletes a coverage interval
func (h *Handler) RemoveCoverage(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.RemoveCoverageInterval(c.Param("role"), models.Day(c.Param("day")), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"message": "Interval removed"})
}

// DuplicateDay copies a role's day schedule onto other days
func (h *Handler) DuplicateDay(c *gin.Context) {
	var req struct {
		To []models.Day `json:"to" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	role := c.Param("role")
	if err := s.DuplicateDaySchedule(role, models.Day(c.Param("day")), req.To); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"coverage": s.Config().Coverage[role]})
}
