package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/opportunityhub/internal/app/system/suggestcache"
	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Cache  suggestcache.Cache
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. A nil cache reports as disabled.
func NewHandler(client *mongo.Client, cache suggestcache.Cache, logger *zap.Logger) *Handler {
	if cache == nil {
		cache = suggestcache.Nop{}
	}
	return &Handler{
		Client: client,
		Cache:  cache,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// Database down: 503 {"status":"error","database":"disconnected",...}.
// Cache down: 200 {"status":"degraded","cache":"unavailable"}; suggestions
// still work from the database.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		Cache:    "connected",
	}

	switch err := h.Cache.Ping(ctx); {
	case err == nil:
	case errors.Is(err, suggestcache.ErrDisabled):
		resp.Cache = "disabled"
	default:
		h.Log.Warn("health-check: cache ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Cache = "unavailable"
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
