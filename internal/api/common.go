package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	Error string `json:"error"`
}

// WriteJSONResponse writes data as a JSON response with the given status.
func WriteJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// WriteErrorResponse writes an error envelope with the given status.
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONResponse(w, errorEnvelope{Error: message}, statusCode)
}
