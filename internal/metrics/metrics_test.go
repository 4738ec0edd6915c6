package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/query/:run/:qid", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query/0/1001", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/query/:run/:qid", "200"))
	assert.GreaterOrEqual(t, got, 1.0)
	assert.NotZero(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddleware_RecordsHandledErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/missing", "404"))
	assert.GreaterOrEqual(t, got, 1.0)
}

func TestObserveDocumentInfo(t *testing.T) {
	before := testutil.ToFloat64(DocumentInfosTotal.WithLabelValues("classic-kernel-pooling", "error"))

	ObserveDocumentInfo("classic-kernel-pooling", errors.New("boom"))

	after := testutil.ToFloat64(DocumentInfosTotal.WithLabelValues("classic-kernel-pooling", "error"))
	assert.Equal(t, before+1, after)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "unknown", normalizePath(""))
	assert.Equal(t, "/run-info", normalizePath("/run-info"))
}
