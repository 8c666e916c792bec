package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/stumpsai/stumpsai/internal/models"
)

const version = "1.0.0"

// Pinger is implemented by dependencies that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles GET /health with per-dependency checks.
type HealthHandler struct {
	db    Pinger
	redis Pinger
	es    Pinger
}

func NewHealthHandler(db, redis, es Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, es: es}
}

// Health handles GET /health. The database is the only hard
// dependency; cache and search degrade the status without failing it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	status := "healthy"

	// Short timeout so health checks never block
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["postgres"] = "unavailable: " + err.Error()
			status = "unhealthy"
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "disabled"
	}

	for name, dep := range map[string]Pinger{"redis": h.redis, "elasticsearch": h.es} {
		if dep == nil {
			checks[name] = "disabled"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "unavailable: " + err.Error()
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks[name] = "ok"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  status,
		Version: version,
		Checks:  checks,
	})
}
