package http

import (
	"errors"
	"net/http"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps use-case errors to HTTP status codes. Order matters: a
// revision error may also wrap a validation error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrUnsupportedStateTransition),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrOrderMinimumNotMet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidRevision),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes err as an Error body. Internal errors are logged and
// their text is not sent to the client.
func errorResponse(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		ctx.Logger().Errorf("%s %s failed: %v", ctx.Request().Method, ctx.Path(), err)
		message = "Internal server error"
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

// httpErrorHandler renders errors returned by middleware and the router,
// such as 404 for unknown routes, in the same Error body.
func httpErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		_ = ctx.JSON(he.Code, Error{Code: he.Code, Message: message})
		return
	}

	_ = errorResponse(ctx, err)
}
