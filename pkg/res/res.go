// Package res writes JSON responses in the API's single response shape.
package res

import (
	"encoding/json"
	"net/http"
)

// Json encodes data with the given status code.
func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes the {"error": msg} body every failure response uses.
func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, map[string]any{"error": msg}, statusCode)
}
