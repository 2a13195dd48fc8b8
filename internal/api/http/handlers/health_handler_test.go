package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newHealthApp() *fiber.App {
	app := fiber.New()
	h := NewHealthHandler("service-order-api", "test", nil, nil)
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)
	return app
}

func TestHealthLive(t *testing.T) {
	app := newHealthApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "alive" || body.Service != "service-order-api" {
		t.Fatalf("unexpected liveness body: %+v", body)
	}
}

func TestHealthReadyNamesDependencies(t *testing.T) {
	app := newHealthApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with unreachable dependencies, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode body: %v (%s)", err, raw)
	}
	if envelope.Error.Code != "DEPENDENCY_UNAVAILABLE" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	for _, dep := range []string{"order_store", "login_attempt_cache"} {
		if _, ok := envelope.Error.Details[dep]; !ok {
			t.Fatalf("readiness details must name %q, got %v", dep, envelope.Error.Details)
		}
	}
}
