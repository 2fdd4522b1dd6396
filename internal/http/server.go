package http

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"opdash/internal/api"
	"opdash/internal/logging"
)

// Server serves the dashboard JSON API
type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer builds the echo instance with routes and middleware registered
func NewServer(dashboard api.DashboardAPI, addr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logging.Logger()))

	Register(e, NewHandler(dashboard))

	return &Server{echo: e, addr: addr}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	logging.Logger().Info("HTTP server listening", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
