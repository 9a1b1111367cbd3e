package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var kindStatus = map[string]int{
	errs.KindInvalidInput:    http.StatusBadRequest,
	errs.KindUnauthorized:    http.StatusUnauthorized,
	errs.KindPaymentRequired: http.StatusPaymentRequired,
	errs.KindForbidden:       http.StatusForbidden,
	errs.KindNotFound:        http.StatusNotFound,
	errs.KindConflict:        http.StatusConflict,
	errs.KindRateLimited:     http.StatusTooManyRequests,
	errs.KindDependency:      http.StatusServiceUnavailable,
	errs.KindInternal:        http.StatusInternalServerError,
}

// NewErrorHandler renders handler errors as Error bodies. The status follows
// the error kind; internal errors are logged and their details withheld.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "HTTPErrorHandler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toErrorBody(err)
		if body.Kind == errs.KindInternal {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(body.Code)
		} else {
			err = c.JSON(body.Code, body)
		}
		if err != nil {
			logger.Warn("failed to write error response", "error", err)
		}
	}
}

func toErrorBody(err error) Error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return Error{Code: he.Code, Kind: kindForStatus(he.Code), Message: fmt.Sprint(he.Message)}
	}

	kind := errs.KindOf(err)
	body := Error{Code: kindStatus[kind], Kind: kind, Message: err.Error()}
	if kind == errs.KindInternal {
		body.Message = "internal error"
	}
	return body
}

func kindForStatus(status int) string {
	for kind, s := range kindStatus {
		if s == status {
			return kind
		}
	}
	if status >= 500 {
		return errs.KindInternal
	}
	return errs.KindInvalidInput
}
