package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"time2gather/core/config"
)

func TestHealth(t *testing.T) {
	e := New(config.AppConfig{AllowedOrigins: []string{"http://localhost:4321"}})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	e := New(config.AppConfig{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"NOT_FOUND"`) {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}
