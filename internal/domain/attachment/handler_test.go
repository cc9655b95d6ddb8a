package attachment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func multipartUpload(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandlerUpload(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)
	e := echo.New()

	patient := uuid.NewString()
	body, contentType := multipartUpload(t, map[string]string{
		"category":    "referral",
		"description": "MD referral fax",
		"patient_id":  patient,
	}, "referral.pdf", "pdf bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	var a Attachment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Filename != "referral.pdf" {
		t.Errorf("filename = %q", a.Filename)
	}
	if a.Category == nil || *a.Category != "referral" {
		t.Error("category not recorded")
	}
	if a.PatientID == nil || a.PatientID.String() != patient {
		t.Error("patient_id not recorded")
	}
	// the storage key must not be exposed
	if strings.Contains(rec.Body.String(), "storage_key") {
		t.Error("storage_key leaked in response")
	}
}

func TestHandlerUpload_MissingFile(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)
	e := echo.New()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("category", "referral")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
}

func TestHandlerUpload_TooLarge(t *testing.T) {
	svc, _, _ := newTestService(8)
	h := NewHandler(svc)
	e := echo.New()

	body, contentType := multipartUpload(t, nil, "big.bin", "definitely more than eight bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("err = %v", err)
	}
}

func TestHandlerDownload(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)
	e := echo.New()

	a := &Attachment{Filename: "exercise plan.pdf", ContentType: "application/pdf"}
	if err := svc.Upload(context.Background(), a, strings.NewReader("plan content")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Download(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "plan content" {
		t.Errorf("body = %q", rec.Body.String())
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, `filename="exercise plan.pdf"`) {
		t.Errorf("content disposition = %q", cd)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
}

func TestHandlerDownload_NotFound(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Download(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestHandlerDelete(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)
	e := echo.New()

	a := &Attachment{Filename: "old.txt"}
	svc.Upload(context.Background(), a, strings.NewReader("x"))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}
