package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// statusFor maps a service error onto an HTTP status. Unrecognised errors are 500.
func statusFor(err error) int {
	switch {
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrReferencedEventMissing),
		errors.Is(err, helpers.ErrMalformedBody):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure writes err as an ErrorResponse with the given message, logging server-side failures.
func writeFailure(logger *slog.Logger, w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, message, err)
}
