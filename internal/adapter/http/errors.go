package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInsufficientOutstanding),
		errors.Is(err, apperr.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case apperr.IsTransient(err), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c echo.Context, log *zap.Logger, err error) error {
	code := statusFor(err)
	msg := err.Error()
	switch {
	case code == http.StatusServiceUnavailable:
		log.Warn("request failed, retryable", zap.String("path", c.Path()), zap.Error(err))
		msg = apperr.ErrTransient.Error()
	case errors.Is(err, apperr.ErrReconciliation):
		log.Error("reconciliation failure", zap.String("path", c.Path()), zap.Error(err))
	case code == http.StatusInternalServerError:
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// ErrorHandler renders errors returned by echo itself (routing, binding)
// with the ErrorResponse shape.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			_ = c.JSON(he.Code, ErrorResponse{Error: msg})
			return
		}
		_ = respondError(c, log, err)
	}
}
