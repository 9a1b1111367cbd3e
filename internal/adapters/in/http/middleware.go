package http

import (
	"log/slog"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const principalKey = "principal"

// Authenticate requires a valid bearer token and stores its principal on the context.
func Authenticate(issuer ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return errs.NewUnauthorizedError("missing bearer token")
			}

			principal, err := issuer.Verify(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(principalKey).(ports.Principal)
			if !ok {
				return errs.NewUnauthorizedError("not authenticated")
			}
			if !slices.Contains(roles, principal.Role) {
				return errs.NewForbiddenError("role " + principal.Role.String() + " may not call this endpoint")
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) ports.Principal {
	p, _ := c.Get(principalKey).(ports.Principal)
	return p
}

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "HTTP")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			request := slog.Group("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("remote_ip", v.RemoteIP),
				slog.String("id", v.RequestID),
			)
			response := slog.Group("response",
				slog.Int("status", v.Status),
				slog.String("latency", v.Latency.String()),
			)

			if v.Status >= 500 {
				logger.Error("server error", request, response)
			} else {
				logger.Info("request completed", request, response)
			}
			return nil
		},
	})
}
