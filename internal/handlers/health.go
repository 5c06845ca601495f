package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-ingest-service/internal/cache"
)

// HealthCheck returns service health status (basic)
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-ingest-service",
	})
}

// HealthHandler exposes an extended health check including Redis
type HealthHandler struct {
	reportCache *cache.ReportCache
}

func NewHealthHandler(reportCache *cache.ReportCache) *HealthHandler {
	return &HealthHandler{reportCache: reportCache}
}

// ExtendedHealthCheck returns detailed health status including Redis
func (h *HealthHandler) ExtendedHealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	health := gin.H{
		"status":  "healthy",
		"service": "catalog-ingest-service",
		"checks":  gin.H{},
	}
	checks := health["checks"].(gin.H)

	if err := h.reportCache.Health(ctx); err != nil {
		checks["redis"] = gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		health["status"] = "degraded"
	} else {
		checks["redis"] = gin.H{
			"status": "healthy",
		}
	}

	c.JSON(http.StatusOK, health)
}
