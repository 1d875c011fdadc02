package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/cache"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	storeAPI *storeapi.Client
	redis    *cache.RedisClient
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when the
// catalog cache is in-process.
func NewHealthHandler(storeAPI *storeapi.Client, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{storeAPI: storeAPI, redis: redis}
}

// GetHealth responds with service, backend and cache status. The service
// stays healthy while the backend is down; catalog views report the failure.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	backendStatus := "connected"
	if err := h.storeAPI.Ping(ctx); err != nil {
		backendStatus = "disconnected"
	}

	cacheStatus := gin.H{"driver": "memory", "status": "connected"}
	if h.redis != nil {
		cacheStatus["driver"] = "redis"
		if err := h.redis.Ping(ctx); err != nil {
			cacheStatus["status"] = "disconnected"
		}
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"backend": gin.H{
			"status": backendStatus,
			"url":    h.storeAPI.BaseURL(),
		},
		"cache": cacheStatus,
	})
}
