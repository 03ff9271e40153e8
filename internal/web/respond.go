// internal/web/respond.go
package web

import (
	"encoding/json"
	"log"
	"net/http"

	"libris/internal/apperr"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error translates a taxonomy error into a JSON error response. The body
// carries the bare message without the sentinel prefix; internal failures
// are logged and replaced with a generic message so persistence details
// never reach the client.
func Error(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	msg := apperr.Message(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		msg = "internal server error"
	}
	JSON(w, status, map[string]string{"error": msg})
}
