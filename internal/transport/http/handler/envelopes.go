package handler

import (
	"encoding/json"
	"net/http"

	"github.com/notes-api-nosql/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthEnvelope wraps signup/signin/me responses.
type AuthEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Token   string           `json:"token,omitempty"`
	User    *domain.Identity `json:"user,omitempty"`
}

// NoteEnvelope wraps single-note responses.
type NoteEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Note    *domain.Note `json:"note,omitempty"`
}

// NotesEnvelope wraps note list responses. Notes is never null: clients
// depend on getting an array even when the list is empty.
type NotesEnvelope struct {
	Success bool          `json:"success"`
	Notes   []domain.Note `json:"notes"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Success: false, Message: msg})
}
