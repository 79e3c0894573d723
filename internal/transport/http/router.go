package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/notes-api-nosql/internal/application/auth"
	"github.com/notes-api-nosql/internal/application/note"
	"github.com/notes-api-nosql/internal/config"
	"github.com/notes-api-nosql/internal/transport/http/handler"
	appmiddleware "github.com/notes-api-nosql/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 100 requests per 15 minutes per IP, applied to everything.
	generalRL := appmiddleware.NewRateLimiter(rate.Every(9*time.Second), 100,
		"Too many requests from this IP, please try again later.")
	r.Use(generalRL.Limit)

	// 3 OTP requests per minute per IP on the expensive email path.
	otpRL := appmiddleware.NewRateLimiter(rate.Every(20*time.Second), 3,
		"Too many OTP requests. Please wait a minute before requesting again.")

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.AccountRepo)

	authSvc := auth.NewService(auth.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		OTPStore:    deps.OTPStore,
		Mailer:      deps.Mailer,
		Signer:      deps.JWTProvider,
	})
	noteSvc := note.NewService(deps.NoteRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	noteH := handler.NewNoteHandler(noteSvc)

	r.Get("/health", healthH.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(otpRL.Limit).Post("/request-otp", authH.RequestOTP)
		r.Post("/signup", authH.SignUp)
		r.Post("/signin", authH.SignIn)
		r.With(authMw).Get("/me", authH.Me)
	})

	r.Route("/api/notes", func(r chi.Router) {
		r.Use(authMw)

		r.Get("/", noteH.List)
		r.Post("/", noteH.Create)
		r.Get("/{id}", noteH.Get)
		r.Put("/{id}", noteH.Update)
		r.Delete("/{id}", noteH.Delete)
	})

	return r
}
