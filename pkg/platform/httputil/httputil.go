// Package httputil centralizes JSON response encoding and domain error
// translation so every handler returns the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "orgnet/pkg/domain-errors"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard JSON error envelope.
// Internal errors omit the description so infrastructure details never leak
// to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	var domainErr *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &domainErr) {
		body["error_description"] = domainErr.Message
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
