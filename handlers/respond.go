package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"netify/services/catalog"
	"netify/services/users"
)

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the single error envelope used across the API. No stack
// traces or internal details cross this boundary.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError translates a service error into its status class and
// writes the envelope.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Server error"
	}
	writeError(w, status, message)
}

func statusForError(err error) int {
	var upstreamErr *catalog.UpstreamError
	switch {
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, users.ErrInvalidItem):
		return http.StatusBadRequest
	case errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, catalog.ErrUpstreamAuth),
		errors.Is(err, catalog.ErrUpstreamUnavailable),
		errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
