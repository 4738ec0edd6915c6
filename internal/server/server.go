package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	_ "github.com/DjordjeVuckovic/ir-explorer/internal/docs"
	"github.com/DjordjeVuckovic/ir-explorer/internal/metrics"
	mw "github.com/DjordjeVuckovic/ir-explorer/pkg/middleware"
	pkgserver "github.com/DjordjeVuckovic/ir-explorer/pkg/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg           *Config
	healthChecker pkgserver.HealthChecker
	ctx           context.Context
	stop          context.CancelFunc
	// quietPaths are routes left out of the request log.
	quietPaths map[string]struct{}
}

func New(cfg *Config, healthChecker pkgserver.HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.DisableHTTP2 = !cfg.UseHttp2

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &Server{
		Echo:          e,
		cfg:           cfg,
		healthChecker: healthChecker,
		ctx:           ctx,
		stop:          stop,
		quietPaths:    make(map[string]struct{}),
	}
}

// Context is cancelled when the process receives a shutdown signal.
func (s *Server) Context() context.Context {
	return s.ctx
}

func (s *Server) ShutdownSignal() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Server) SetupMiddlewares() *Server {
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(mw.Logger(mw.WithSkipper(s.skipLogging)))
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(metrics.Middleware())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
	return s
}

func (s *Server) skipLogging(c echo.Context) bool {
	_, ok := s.quietPaths[c.Path()]
	return ok
}

func (s *Server) SetupErrorHandler() *Server {
	s.Echo.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return s
}

func (s *Server) SetupHealthChecks(path string) *Server {
	s.quietPaths[path] = struct{}{}
	s.Echo.GET(path, func(c echo.Context) error {
		if !s.healthChecker.Healthy(c.Request().Context()) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return s
}

func (s *Server) SetupOpenApi(path string) *Server {
	s.Echo.GET(path, echoSwagger.WrapHandler)
	return s
}

func (s *Server) SetupMetrics(path string) *Server {
	s.quietPaths[path] = struct{}{}
	s.Echo.GET(path, echo.WrapHandler(promhttp.Handler()))
	return s
}

// SetupStatic serves the web UI when a static directory is configured.
func (s *Server) SetupStatic() *Server {
	if s.cfg.StaticDir == "" {
		slog.Info("Static UI disabled")
		return s
	}
	s.Echo.File("/", filepath.Join(s.cfg.StaticDir, "index.html"))
	s.Echo.Static("/dist", filepath.Join(s.cfg.StaticDir, "dist"))
	slog.Info("Serving static UI", "dir", s.cfg.StaticDir)
	return s
}

func (s *Server) Start() error {
	defer s.stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-s.ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("Server stopped")
	return nil
}
