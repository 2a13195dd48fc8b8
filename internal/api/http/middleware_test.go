package http

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/service-order-api/internal/observability"
	apperrors "github.com/spec-kit/service-order-api/pkg/util"
)

func TestMiddlewareRecordsConvertedStatus(t *testing.T) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("resource", nil)
	})

	resp, _ := doRequest(t, app, http.MethodGet, "/missing", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	if got := metrics.RequestCount("/missing", http.MethodGet, http.StatusNotFound); got != 1 {
		t.Fatalf("request counter must record the converted status, got %d hits for 404", got)
	}
	if got := metrics.RequestCount("/missing", http.MethodGet, http.StatusOK); got != 0 {
		t.Fatalf("failed request must not be recorded as 200, got %d hits", got)
	}
	if got := metrics.ErrorCount("/missing", http.MethodGet, "NOT_FOUND"); got != 1 {
		t.Fatalf("error counter must record the mapped code, got %d hits", got)
	}
}

func TestMiddlewareRecoversPanic(t *testing.T) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, raw := doRequest(t, app, http.MethodGet, "/panic", "", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, raw); msg != "internal server error" {
		t.Fatalf("panic must not leak detail, got %q", msg)
	}
	if got := metrics.RequestCount("/panic", http.MethodGet, http.StatusInternalServerError); got != 1 {
		t.Fatalf("panic response status must be recorded, got %d hits for 500", got)
	}
}
