package common

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError writes a machine-readable error reason. Clients surface
// the reason string verbatim.
func WriteError(w http.ResponseWriter, status int, reason string) {
	WriteJSON(w, status, errorResponse{Error: reason})
}

// WriteServiceError maps a service error to its HTTP status and
// writes the reason.
func WriteServiceError(w http.ResponseWriter, err error) {
	WriteError(w, HTTPStatus(err), err.Error())
}
