package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorHandler_RouteNotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler

	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "endpoint not found", body["message"])
}

func TestHTTPErrorHandler_UncaughtError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("dsn parse failure")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Internal detail must never leak to the caller.
	assert.Equal(t, "internal server error", body["message"])
}

func TestHTTPErrorHandler_PreservesHandlerMessage(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/denied", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
	})

	req := httptest.NewRequest(http.MethodGet, "/denied", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing authentication token", body["message"])
}
