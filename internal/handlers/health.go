package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/queue"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker handles health check requests
type HealthChecker struct {
	db                   *database.DB
	redis                Pinger         // nil when rate limiting is disabled
	queue                queue.JobQueue // nil when the queue is not configured
	openRouterConfigured bool
}

// NewHealthChecker creates a new health checker. redis and queue may be nil.
func NewHealthChecker(db *database.DB, redis Pinger, jobQueue queue.JobQueue, openRouterConfigured bool) *HealthChecker {
	return &HealthChecker{
		db:                   db,
		redis:                redis,
		queue:                jobQueue,
		openRouterConfigured: openRouterConfigured,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status               string `json:"status"`
	Database             string `json:"database"`
	OpenRouterConfigured bool   `json:"openRouterConfigured"`
	Redis                string `json:"redis,omitempty"`
	Queue                string `json:"queue,omitempty"`
	Timestamp            string `json:"timestamp"`
}

// HealthCheck handles the /api/health endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:               "ok",
		Database:             "connected",
		OpenRouterConfigured: h.openRouterConfigured,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		response.Status = "degraded"
		response.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		response.Redis = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			response.Status = "degraded"
			response.Redis = "unreachable"
		}
	}

	if h.queue != nil {
		response.Queue = "connected"
		if err := h.queue.HealthCheck(ctx); err != nil {
			response.Status = "degraded"
			response.Queue = "unreachable"
		}
	}

	respondJSON(w, status, response)
}
