package handler

import (
	"net/http"
	"time"
)

// HealthEnvelope reports liveness.
type HealthEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler handles the health-check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthEnvelope{
		Success:   true,
		Message:   "Server is running!",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
