package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-config-api/pkg/store"
)

// SetHardRules patches the hard scheduling rules
func (h *Handler) SetHardRules(c *gin.Context) {
	var patch store.HardRulesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.SetHardRules(patch); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"hardRules": s.Config().HardRules})
}

// SetSoftRules patches the soft rule weights
func (h *Handler) SetSoftRules(c *gin.Context) {
	var patch store.SoftRulesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.SetSoftRules(patch); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"softRules": s.Config().SoftRules})
}

// SetBudget patches the weekly budget
func (h *Handler) SetBudget(c *gin.Context) {
	var patch store.BudgetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.SetBudget(patch); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"budget": s.Config().Budget})
}
