package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoginEndpoint_Success(t *testing.T) {
	h := NewHandler(NewService(testSecret, "frontdesk", "s3cret"))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username": "frontdesk", "password": "s3cret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token in response")
	}
	if resp.ExpiresIn != int64(TokenTTL.Seconds()) {
		t.Errorf("expires_in = %d", resp.ExpiresIn)
	}
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	h := NewHandler(NewService(testSecret, "frontdesk", "s3cret"))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username": "frontdesk", "password": "nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
}
