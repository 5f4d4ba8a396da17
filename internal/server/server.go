// Package server exposes the films page and its component fragments over
// HTTP with Echo.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pthm/swfilms/components"
	"github.com/pthm/swfilms/internal/fetch"
)

// DefaultShutdownTimeout bounds graceful shutdown when Options leaves it
// unset.
const DefaultShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	// Key signs component props. Empty means a random key.
	Key []byte
	// ShowCharacterNames lists names in the characters column.
	ShowCharacterNames bool
}

// Server serves the page at "/", component fragments under "/_c/" and a
// health check at "/healthz".
type Server struct {
	echo   *echo.Echo
	set    *components.Set
	client *fetch.Client
	logger zerolog.Logger
	opts   Options
}

// New wires routes and middleware. Nothing listens until Run.
func New(client *fetch.Client, logger zerolog.Logger, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(requestContext(client, logger))

	reg := Mount(e, WithKey(opts.Key))
	set := components.Init(reg, components.Options{
		ShowCharacterNames: opts.ShowCharacterNames,
	})

	s := &Server{
		echo:   e,
		set:    set,
		client: client,
		logger: logger,
		opts:   opts,
	}

	e.GET("/", s.handlePage)
	e.GET("/healthz", s.handleHealth)

	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Components returns the registered component instances.
func (s *Server) Components() *components.Set {
	return s.set
}

func (s *Server) handlePage(c echo.Context) error {
	return Render(c, components.Page(s.set.Films))
}

type healthResponse struct {
	Status string `json:"status"`
	Cached int    `json:"cached"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Cached: s.client.Len(),
	})
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.opts.Addr).Msg("Server listening")
		if err := s.echo.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}

// Addr returns the listening address once Run has bound it, or nil.
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}
