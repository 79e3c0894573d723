package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody matches the API-wide error envelope: a success flag plus a
// short human-readable message.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSONError writes a JSON-encoded error response with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Success: false, Message: msg})
}
