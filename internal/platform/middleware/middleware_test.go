package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, mw(handler)(c)
}

func TestRequestID_GeneratesNew(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, err := runMiddleware(t, RequestID(), req, func(c echo.Context) error {
		if rid, _ := c.Get("request_id").(string); rid == "" {
			t.Error("expected request_id on context")
		}
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")

	rec, _ := runMiddleware(t, RequestID(), req, func(c echo.Context) error {
		if rid, _ := c.Get("request_id").(string); rid != "my-custom-id" {
			t.Errorf("request_id = %q", rid)
		}
		return c.String(http.StatusOK, "ok")
	})
	if got := rec.Header().Get(RequestIDHeader); got != "my-custom-id" {
		t.Errorf("response header = %q", got)
	}
}

func TestLogger_PassesThrough(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits", nil)

	_, err := runMiddleware(t, Logger(logger), req, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	_, err := runMiddleware(t, Recovery(logger), req, func(c echo.Context) error {
		panic("test panic")
	})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", httpErr.Code)
	}
}

func TestRecovery_PassesThrough(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)

	_, err := runMiddleware(t, Recovery(logger), req, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
