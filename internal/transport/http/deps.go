package http

import (
	"github.com/notes-api-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/notes-api-nosql/internal/infrastructure/jwt"
	"github.com/notes-api-nosql/internal/infrastructure/otpstore"
	"github.com/notes-api-nosql/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo *dynamo.AccountRepo
	NoteRepo    *dynamo.NoteRepo
	OTPStore    otpstore.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
