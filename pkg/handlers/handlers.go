package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/roster-config-api/pkg/auth"
	"github.com/arnavshah/roster-config-api/pkg/database"
	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/presets"
	"github.com/arnavshah/roster-config-api/pkg/solver"
	"github.com/arnavshah/roster-config-api/pkg/store"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     *gorm.DB
	Auth   *auth.Service
	Stores *store.Registry
	// Solver is nil when no optimizer is configured
	Solver solver.Solver
	Logger *zap.Logger
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key. The key's user id selects the workspace.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		// Fetch or create API key record to track usage. Revoked records are looked up too.
		var apiKey database.APIKey
		res := h.DB.Unscoped().Where(&database.APIKey{Key: key}).Limit(1).Find(&apiKey)
		if res.Error != nil {
			h.Logger.Error("Failed to load API key record", zap.Error(res.Error))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
			return
		}
		if res.RowsAffected == 0 {
			apiKey = database.APIKey{
				Key:        key,
				Name:       userID,
				KeyPreview: auth.KeyPreview(key),
				RateLimit:  10000,
			}
			if err := h.DB.Create(&apiKey).Error; err != nil {
				h.Logger.Error("Failed to create API key record", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
				return
			}
		}
		if apiKey.DeletedAt.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key revoked"})
			return
		}

		var today database.APIUsage
		if err := h.DB.Where("key_id = ? AND date = ?", apiKey.ID, usageDate()).Limit(1).Find(&today).Error; err != nil {
			h.Logger.Error("Failed to read usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not check rate limit"})
			return
		}
		if apiKey.RateLimit > 0 && today.RequestCount >= apiKey.RateLimit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Daily rate limit exceeded"})
			return
		}

		now := time.Now()
		h.DB.Model(&apiKey).Update("last_used", &now)

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, intervalCount, employeeCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("api_usages.request_count + ?", 1),
			"total_intervals": gorm.Expr("api_usages.total_intervals + ?", intervalCount),
			"total_employees": gorm.Expr("api_usages.total_employees + ?", employeeCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:          apiKey.ID,
		Date:           usageDate(),
		RequestCount:   1,
		TotalIntervals: intervalCount,
		TotalEmployees: employeeCount,
	}).Error
	if err != nil {
		h.Logger.Warn("Failed to record usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
	}
}

// workspace returns the store of the authenticated key, writing an error response when it cannot
func (h *Handler) workspace(c *gin.Context) (*store.Store, bool) {
	s, err := h.Stores.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.Error("Failed to load workspace", zap.String("workspace", c.GetString("userID")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load workspace"})
		return nil, false
	}
	return s, true
}

// saved persists the workspace, records usage and writes body with the fresh derived state
func (h *Handler) saved(c *gin.Context, s *store.Store, status int, body gin.H) {
	if err := s.Persist(c.Request.Context()); err != nil {
		h.Logger.Error("Failed to persist config", zap.String("workspace", s.Workspace()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save configuration"})
		return
	}
	cfg := s.Config()
	h.RecordUsage(c, countIntervals(cfg), len(cfg.Employees))

	if body == nil {
		body = gin.H{}
	}
	body["derived"] = s.Derived()
	c.JSON(status, body)
}

// fail maps store errors onto status codes
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrRoleNotFound),
		errors.Is(err, store.ErrIntervalNotFound),
		errors.Is(err, store.ErrEmployeeNotFound),
		errors.Is(err, presets.ErrUnknownPreset):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnknownDay),
		errors.Is(err, store.ErrEmptyRoleName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

func usageDate() string {
	return time.Now().Format("2006-01-02")
}

func countIntervals(cfg models.HumanConfig) int {
	n := 0
	for _, days := range cfg.Coverage {
		for _, ivs := range days {
			n += len(ivs)
		}
	}
	return n
}
