package errors_test

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogServerError_HidesCause(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search/opportunities", nil)
	el.LogServerError(rec, req, "search failed", stderrors.New("connection refused"), "Failed to search opportunities")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body uierrors.Body
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Failed to search opportunities" {
		t.Errorf("error = %q", body.Error)
	}
	if logs.Len() != 1 || logs.All()[0].Message != "search failed" {
		t.Errorf("expected one logged entry, got %v", logs.All())
	}
}

func TestLogBadRequest(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	el.LogBadRequest(rec, httptest.NewRequest("POST", "/search/save", nil), "bad body", stderrors.New("eof"), "Invalid request body")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}
