// Package api implements the JSON API handlers for the storefront.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/harlansk/sleipnir/internal/domain"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps a domain error code to an HTTP status and writes a JSON
// error body. Internal errors are logged with the underlying cause; the body
// carries only the generic user-facing message.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	status := statusFromCode(code)

	if code == domain.EINTERNAL && logger != nil {
		logger.Error("internal error", "error", err)
	}

	respondJSON(w, status, map[string]string{
		"error": domain.ErrorMessage(err),
		"code":  code,
	})
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("api.decode", "request body is required")
		}
		return &domain.Error{
			Code:    domain.EINVALID,
			Op:      "api.decode",
			Message: "invalid request body",
			Err:     err,
		}
	}
	return nil
}
