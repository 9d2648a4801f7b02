package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/opportunityhub/internal/app/features/health"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/dalemusser/opportunityhub/internal/testutil"
	"go.uber.org/zap"
)

type downCache struct{}

func (downCache) Get(context.Context, string) ([]models.Suggestion, bool) { return nil, false }
func (downCache) Set(context.Context, string, []models.Suggestion)        {}
func (downCache) Ping(context.Context) error                              { return errors.New("dial tcp: refused") }

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, resp
}

func TestServe_DatabaseConnected_CacheDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), nil, zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", contentType, "application/json")
	}
	if resp.Status != "ok" || resp.Database != "connected" || resp.Cache != "disabled" {
		t.Errorf("response = %+v, want ok/connected/disabled", resp)
	}
}

func TestServe_CacheDownIsDegraded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), downCache{}, zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Status != "degraded" || resp.Cache != "unavailable" {
		t.Errorf("response = %+v, want degraded/unavailable", resp)
	}
}

func TestServe_DatabaseDisconnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := db.Client()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	handler := health.NewHandler(client, nil, zap.NewNop())

	rec, resp := serve(t, handler)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || resp.Database != "disconnected" {
		t.Errorf("response = %+v, want error/disconnected", resp)
	}
}
