package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ir_explorer"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// DocumentInfosTotal counts assembled document explanations.
	DocumentInfosTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_infos_total",
			Help:      "Document explanations assembled, by score type and outcome",
		},
		[]string{"score_type", "status"},
	)

	RunsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_loaded",
			Help:      "Number of runs loaded at startup",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(DocumentInfosTotal)
	prometheus.MustRegister(RunsLoaded)
}

// ObserveDocumentInfo records one assembled (or failed) explanation.
func ObserveDocumentInfo(scoreType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DocumentInfosTotal.WithLabelValues(scoreType, status).Inc()
}

// Middleware records HTTP request duration and count labelled with the
// route pattern. Errors are handed to the echo error handler first so the
// final status is recorded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			path := normalizePath(c.Path())
			method := c.Request().Method

			httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			// already handled, the error handler ignores committed responses
			return err
		}
	}
}

func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
