// Package respond writes the JSON response envelope shared by every
// API handler and maps engine errors onto HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/advisordesk/advisordesk/internal/query"
	"github.com/advisordesk/advisordesk/internal/retry"
	"github.com/advisordesk/advisordesk/internal/source"
)

// Error codes surfaced to API consumers.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeFetch       = "FETCH_ERROR"
	CodeUnavailable = "SOURCE_UNAVAILABLE"
	CodeTimeout     = "TIMEOUT"
)

// ErrorBody describes a failed request. Field and Value are only set for
// validation failures.
type ErrorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Details string `json:"details,omitempty"`
}

// Envelope is the uniform response shape. Success responses carry Data,
// failures carry Error.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// Data writes a 200 success envelope around data.
func Data(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Err classifies err and writes the matching failure envelope. Unrecognized
// errors become a generic 500 without leaking internals.
func Err(w http.ResponseWriter, err error) {
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		write(w, http.StatusBadRequest, Envelope{
			Message: "invalid request parameters",
			Error: &ErrorBody{
				Code:    CodeValidation,
				Field:   verr.Field,
				Value:   verr.Value,
				Details: verr.Reason,
			},
		})

		return
	}

	if errors.Is(err, source.ErrUnavailable) {
		write(w, http.StatusServiceUnavailable, Envelope{
			Message: "data source unavailable",
			Error:   &ErrorBody{Code: CodeUnavailable, Details: err.Error()},
		})

		return
	}

	if errors.Is(err, retry.ErrTimeout) {
		write(w, http.StatusGatewayTimeout, Envelope{
			Message: "request timed out",
			Error:   &ErrorBody{Code: CodeTimeout},
		})

		return
	}

	slog.Error("request failed", "error", err)
	write(w, http.StatusInternalServerError, Envelope{
		Message: "failed to load data",
		Error:   &ErrorBody{Code: CodeFetch},
	})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
