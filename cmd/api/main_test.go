package main

import (
	"empresas/cmd/internal/config"
	"empresas/cmd/internal/http/handler"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *echo.Echo {
	cfg := &config.Config{BodyLimit: "1K"}
	return NewServer(cfg, handler.NewCompanyRoute(nil), handler.NewReportRoute(nil))
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestBodyLimit(t *testing.T) {
	e := newTestServer()

	body := `{"nombre":"` + strings.Repeat("a", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/process-data", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
