// Package httputil centralizes JSON encoding, request decoding, and error
// mapping for HTTP handlers.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
)

// Validatable is implemented by request types that validate and parse their
// own fields after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON serializes v with the given HTTP status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to its HTTP status and stable error code.
// Internal errors omit the description to avoid leaking details.
func WriteError(w http.ResponseWriter, err error) {
	code := domerrors.CodeOf(err)

	body := map[string]string{"error": string(code)}
	if code != domerrors.CodeInternal {
		body["error_description"] = err.Error()
	}

	WriteJSON(w, statusFor(code), body)
}

func statusFor(code domerrors.Code) int {
	switch code {
	case domerrors.CodeBadRequest, domerrors.CodeValidation, domerrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case domerrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the request body into T and runs its Validate hook.
// On failure it writes the error response and returns ok=false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "request decode failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, domerrors.Wrap(domerrors.CodeBadRequest, "invalid JSON body", err))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
