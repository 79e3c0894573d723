package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/notes-api-nosql/internal/domain"
	"github.com/notes-api-nosql/internal/pkg/id"
	pkgotp "github.com/notes-api-nosql/internal/pkg/otp"
)

const (
	otpSubject = "Your OTP for Notes App"
	dobLayout  = "2006-01-02"
)

// RequestOTPRequest asks for a code to be emailed. The same endpoint
// serves both signup and signin.
type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SignUpRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"` // expected format: YYYY-MM-DD
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
}

type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type Service interface {
	RequestOTP(ctx context.Context, req RequestOTPRequest) error
	SignUp(ctx context.Context, req SignUpRequest) (*domain.Account, string, error)
	SignIn(ctx context.Context, req SignInRequest) (*domain.Account, string, error)
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
}

type codeStore interface {
	Store(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, candidate string) (bool, error)
	Clear(ctx context.Context, email string) error
}

type mailSender interface {
	SendEmail(to, subject, body string) error
}

type tokenSigner interface {
	Sign(userID string) (string, error)
}

type service struct {
	accounts accountStore
	otpStore codeStore
	mailer   mailSender
	signer   tokenSigner
}

type ServiceDeps struct {
	AccountRepo accountStore
	OTPStore    codeStore
	Mailer      mailSender
	Signer      tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.AccountRepo,
		otpStore: deps.OTPStore,
		mailer:   deps.Mailer,
		signer:   deps.Signer,
	}
}

// RequestOTP stores a fresh code for the email and sends it. Any code
// already pending for that email is replaced and becomes invalid.
func (s *service) RequestOTP(ctx context.Context, req RequestOTPRequest) error {
	email := normalizeEmail(req.Email)
	code, err := pkgotp.NewCode()
	if err != nil {
		return err
	}
	if err := s.otpStore.Store(ctx, email, code); err != nil {
		return err
	}
	if err := s.mailer.SendEmail(email, otpSubject, otpBody(code)); err != nil {
		// The stored entry stays behind; it expires on its own and a
		// resend will overwrite it.
		slog.Error("OTP email delivery failed", "email", email, "err", err)
		return fmt.Errorf("OTP delivery failed: %w", domain.ErrUnavailable)
	}
	return nil
}

// SignUp verifies the code, creates the account and issues a session
// token. The OTP is consumed only after everything else succeeded; a
// failed existence check leaves it valid for a retry.
func (s *service) SignUp(ctx context.Context, req SignUpRequest) (*domain.Account, string, error) {
	dob, err := time.Parse(dobLayout, req.DateOfBirth)
	if err != nil {
		return nil, "", fmt.Errorf("dateOfBirth must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	email := normalizeEmail(req.Email)

	ok, err := s.otpStore.Verify(ctx, email, req.OTP)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("invalid or expired OTP: %w", domain.ErrUnauthorized)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	a := &domain.Account{
		UserID:      id.New(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		DateOfBirth: dob,
		CreatedAt:   time.Now().UTC(),
	}
	// Two concurrent signups can both pass the check above; the
	// conditional put in the repository settles the race.
	if err := s.accounts.Put(ctx, a); err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(a.UserID)
	if err != nil {
		return nil, "", err
	}
	s.consume(ctx, email)
	return a, token, nil
}

// SignIn verifies the code against an existing account and issues a
// session token.
func (s *service) SignIn(ctx context.Context, req SignInRequest) (*domain.Account, string, error) {
	email := normalizeEmail(req.Email)

	ok, err := s.otpStore.Verify(ctx, email, req.OTP)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("invalid or expired OTP: %w", domain.ErrUnauthorized)
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("no account with this email: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(a.UserID)
	if err != nil {
		return nil, "", err
	}
	s.consume(ctx, email)
	return a, token, nil
}

// consume clears the pending code once a flow has fully succeeded.
func (s *service) consume(ctx context.Context, email string) {
	if err := s.otpStore.Clear(ctx, email); err != nil {
		slog.Warn("failed to clear consumed OTP", "email", email, "err", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func otpBody(code string) string {
	return fmt.Sprintf(
		"Your One-Time Password for Notes App is: %s\r\n\r\n"+
			"This OTP is valid for 5 minutes only.\r\n"+
			"If you didn't request this OTP, please ignore this email.",
		code,
	)
}
