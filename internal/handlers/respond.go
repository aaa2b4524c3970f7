// Package handlers implements the HTTP/JSON surface of inkpress: auth,
// categories, subcategories, and posts. Handlers decode and validate input
// at the boundary, call into the stores, and map store errors to statuses.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkpress/internal/store"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON marshals v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeRawJSON writes an already-encoded JSON payload (cache hits).
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeStoreError maps a store error to its HTTP status. singular and plural
// name the entity in messages; conflictMsg covers the duplicate-slug case.
// Anything outside the domain taxonomy is a server fault: logged, surfaced
// as a generic 500.
func writeStoreError(w http.ResponseWriter, err error, singular, plural, conflictMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, singular+" not found")
	case errors.Is(err, store.ErrForbidden):
		writeError(w, http.StatusForbidden, "you can only delete your own "+plural)
	case errors.Is(err, store.ErrOrphanSubcategory):
		writeError(w, http.StatusConflict, "specify a category to create a new subcategory")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, conflictMsg)
	case errors.Is(err, store.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "incorrect password")
	default:
		slog.Error("store error", "entity", singular, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses the JSON request body into dst. Returns false after
// writing a 400 when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
