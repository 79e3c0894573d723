package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/notes-api-nosql/internal/application/auth"
	"github.com/notes-api-nosql/internal/domain"
	"github.com/notes-api-nosql/internal/pkg/validate"
	"github.com/notes-api-nosql/internal/transport/http/middleware"
)

// Stable user-facing messages; clients branch on these.
const (
	msgOTPSent           = "OTP sent successfully to your email. Please check your inbox and spam folder."
	msgAccountCreated    = "Account created successfully"
	msgLoginSuccessful   = "Login successful"
	msgInvalidOTP        = "Invalid or expired OTP. Please request a new one."
	msgAccountExists     = "User already exists with this email"
	msgNoSuchAccount     = "No account found with this email address"
	msgOTPDeliveryFailed = "Failed to send OTP. Please try again."
	msgInternal          = "Internal server error. Please try again."
)

// AuthHandler handles OTP request, signup and signin endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RequestOTP(r.Context(), req); err != nil {
		authError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: msgOTPSent})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req auth.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, token, err := h.svc.SignUp(r.Context(), req)
	if err != nil {
		authError(w, err)
		return
	}
	ident := acct.Identity()
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		Success: true,
		Message: msgAccountCreated,
		Token:   token,
		User:    &ident,
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req auth.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, token, err := h.svc.SignIn(r.Context(), req)
	if err != nil {
		authError(w, err)
		return
	}
	ident := acct.Identity()
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Success: true,
		Message: msgLoginSuccessful,
		Token:   token,
		User:    &ident,
	})
}

// Me echoes the identity resolved by the Auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Success: true, User: &ident})
}

// authError maps service errors to statuses and their canonical messages.
// DuplicateEmail detected at insert time (ErrConflict from the repository)
// reads the same as a failed existence check.
func authError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusBadRequest, msgInvalidOTP)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, msgAccountExists)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusBadRequest, msgNoSuchAccount)
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, msgOTPDeliveryFailed)
	default:
		slog.Error("auth request failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
