package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	componentOK            = "ok"
	componentNotConfigured = "not configured"
)

// ModelInfo reports the loaded checkpoint
type ModelInfo interface {
	ModelVersion() string
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	model ModelInfo
}

// NewHealthHandler creates a new health handler. db and redis are nil when disabled.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, model ModelInfo) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
		model: model,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status       string            `json:"status"`
	ModelVersion string            `json:"model_version,omitempty"`
	Components   map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status: "healthy",
		Components: map[string]string{
			"model":    h.modelStatus(),
			"database": h.databaseStatus(ctx),
			"redis":    h.redisStatus(ctx),
		},
	}
	if h.model != nil {
		status.ModelVersion = h.model.ModelVersion()
	}

	httpStatus := http.StatusOK
	for _, state := range status.Components {
		if state != componentOK && state != componentNotConfigured {
			status.Status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, status)
}

// Ready handles GET /ready. The service is ready once a model is loaded
// and the history database, when configured, answers.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.modelStatus() != componentOK {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model not loaded"})
		return
	}
	if state := h.databaseStatus(ctx); state != componentOK && state != componentNotConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) modelStatus() string {
	if h.model == nil || h.model.ModelVersion() == "" {
		return "not loaded"
	}
	return componentOK
}

func (h *HealthHandler) databaseStatus(ctx context.Context) string {
	if h.db == nil {
		return componentNotConfigured
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return componentOK
}

func (h *HealthHandler) redisStatus(ctx context.Context) string {
	if h.redis == nil {
		return componentNotConfigured
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return "error: " + err.Error()
	}
	return componentOK
}
