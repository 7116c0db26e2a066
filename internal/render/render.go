// Package render writes JSON responses and error envelopes.
package render

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/templui/goaltrack/internal/validation"
)

// Error kinds reported in the "kind" field of an error response.
const (
	KindBadRequest         = "bad_request"
	KindUnauthenticated    = "unauthenticated"
	KindInvalidCredentials = "invalid_credentials"
	KindForbidden          = "forbidden"
	KindNotFound           = "not_found"
	KindConflict           = "conflict"
	KindValidation         = "validation"
	KindRateLimited        = "rate_limited"
	KindStorage            = "storage"
	KindInternal           = "internal"
)

type ErrorDetail struct {
	Kind    string                  `json:"kind"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

type errorBody struct {
	Error ErrorDetail `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("render json failed", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, detail ErrorDetail) {
	JSON(w, status, errorBody{Error: detail})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
