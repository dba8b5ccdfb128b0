package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/okovalenko/spendtrack/internal/storage"
)

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError writes the uniform error envelope {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service/storage error onto an HTTP status.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case storage.IsNotFoundError(err):
		respondError(w, http.StatusNotFound, err.Error())
	case storage.IsConflictError(err):
		respondError(w, http.StatusConflict, err.Error())
	case storage.IsValidationError(err), storage.IsReferenceError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
