package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/render"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/service"
)

const maxBodyBytes = 1 << 20

// writeError maps a service error kind to its status code and error envelope.
// Server-side failures are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	var serr *service.StorageError

	switch {
	case errors.As(err, &verr):
		render.Error(w, http.StatusBadRequest, render.ErrorDetail{
			Kind:    render.KindValidation,
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
	case errors.Is(err, service.ErrUnauthenticated):
		render.Error(w, http.StatusUnauthorized, render.ErrorDetail{Kind: render.KindUnauthenticated, Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		render.Error(w, http.StatusUnauthorized, render.ErrorDetail{Kind: render.KindInvalidCredentials, Message: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		render.Error(w, http.StatusForbidden, render.ErrorDetail{Kind: render.KindForbidden, Message: err.Error()})
	case errors.Is(err, repository.ErrGoalNotFound):
		render.Error(w, http.StatusNotFound, render.ErrorDetail{Kind: render.KindNotFound, Message: err.Error()})
	case errors.Is(err, service.ErrEmailAlreadyExists):
		render.Error(w, http.StatusConflict, render.ErrorDetail{Kind: render.KindConflict, Message: err.Error()})
	case errors.As(err, &serr):
		slog.Error("storage failure", "error", err, "op", serr.Op, "method", r.Method, "path", r.URL.Path, "user_id", ctxkeys.UserID(r.Context()))
		render.Error(w, http.StatusInternalServerError, render.ErrorDetail{Kind: render.KindStorage, Message: err.Error()})
	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path, "user_id", ctxkeys.UserID(r.Context()))
		render.Error(w, http.StatusInternalServerError, render.ErrorDetail{Kind: render.KindInternal, Message: "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, message string) {
	render.Error(w, http.StatusBadRequest, render.ErrorDetail{Kind: render.KindBadRequest, Message: message})
}

// decodeJSON reads a size-limited JSON body into v and reports a 400 when it is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		badRequest(w, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

// parseDate accepts RFC 3339 timestamps and plain dates; plain dates are
// midnight in loc. An empty string yields the zero time.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}
	return t, nil
}
