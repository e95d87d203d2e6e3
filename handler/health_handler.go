package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// HealthHandler reports the availability of the service and its backing
// stores. The redis client may be nil when caching is disabled.
type HealthHandler struct {
	db    *sql.DB
	redis *redis.Client
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check godoc
// @Summary      Show the status of server
// @Description  get the status of server and its backing stores
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":   "healthy",
		"database": "connected",
		"redis":    "disabled",
	}

	if err := h.db.PingContext(r.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = "disconnected"
	}

	if h.redis != nil {
		status["redis"] = "connected"
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			status["redis"] = "disconnected"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}
