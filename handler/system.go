package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// HealthCheck handles GET /health
// @Summary Health check
// @Description Returns service health status and Redis connectivity
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Failure 503 {object} map[string]string "Service is unhealthy"
// @Router /health [get]
func (h *QRHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Redis health check failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "unhealthy",
			"redis":  "unavailable",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"redis":  "connected",
	})
}

// CacheMetrics handles GET /cache/metrics
// @Summary Cache performance metrics
// @Description Returns QR record cache metrics including hit rate and evictions
// @Tags System
// @Produce json
// @Success 200 {object} cache.MetricsSnapshot "Cache metrics"
// @Failure 503 {object} ErrorResponse "Cache is disabled"
// @Router /cache/metrics [get]
func (h *QRHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.cacheEnabled() {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("cache is disabled"), "")
		return
	}

	metrics := h.cache.GetMetricsSnapshot()
	SendJSONSuccess(w, http.StatusOK, metrics)
}
