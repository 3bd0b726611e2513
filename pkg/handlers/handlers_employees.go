package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/schema"
	"github.com/arnavshah/roster-config-api/pkg/store"
)

// AddEmployee adds an employee record, filling in an id and default shift lengths
func (h *Handler) AddEmployee(c *gin.Context) {
	var e models.Employee
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := schema.ValidateEmployee(e); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee", "fields": errs})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	added, err := s.AddEmployee(e)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusCreated, gin.H{"employee": added})
}

// UpdateEmployee patches an employee record
func (h *Handler) UpdateEmployee(c *gin.Context) {
	var patch store.EmployeePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.workspace(c)
	if !ok {
		return
	}
	updated, err := s.UpdateEmployee(c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"employee": updated})
}

// RemoveEmployee deletes an employee and scrubs them from pairing lists
func (h *Handler) RemoveEmployee(c *gin.Context) {
	s, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := s.RemoveEmployee(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.saved(c, s, http.StatusOK, gin.H{"message": "Employee removed"})
}
