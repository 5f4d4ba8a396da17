package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pthm/swfilms"
	"github.com/pthm/swfilms/internal/fetch"
)

// requestContext puts the fetch client and a request-scoped logger into
// the request context. Views read through fetch.FromContext and boundaries
// log through zerolog.Ctx.
func requestContext(client *fetch.Client, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			l := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			ctx := fetch.WithClient(req.Context(), client)
			ctx = l.WithContext(ctx)
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

// requestLogger logs one line per request.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil || v.Status >= 500 {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Bool("htmx", swfilms.IsHTMX(c.Request())).
				Msg("Request")
			return nil
		},
	})
}
