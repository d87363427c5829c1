package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/need-mission/site-api/internal/app/adminauth"
)

const DefaultBodyLimitBytes = 100 * 1024

type RouterOptions struct {
	Log *zap.Logger

	// AdminMiddleware guards admin-only routes. Defaults to NewAdminMiddleware(Gate).
	AdminMiddleware func(http.Handler) http.Handler
	Gate            *adminauth.Gate

	// AllowedOrigins configures CORS. Empty disables CORS handling.
	AllowedOrigins []string
	// BodyLimitBytes caps request bodies. Defaults to DefaultBodyLimitBytes.
	BodyLimitBytes int64

	// StaticDir, when set, serves the public site for non-API paths.
	StaticDir string
}

// NewRouter constructs the HTTP router: /healthz, the JSON API under /api, and the
// optional static site.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	log := opts.Log
	if log == nil {
		log = s.Log
	}
	if log == nil {
		log = zap.NewNop()
	}
	admin := opts.AdminMiddleware
	if admin == nil {
		admin = NewAdminMiddleware(opts.Gate, log)
	}
	limit := opts.BodyLimitBytes
	if limit <= 0 {
		limit = DefaultBodyLimitBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestIDHeader)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "DENY"))
	r.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         int((10 * time.Minute).Seconds()),
		}).Handler)
	}

	// Health endpoint is out of the API surface and used for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequestSize(limit))
		r.NotFound(jsonNotFound)
		r.MethodNotAllowed(jsonMethodNotAllowed)

		r.Post("/memberships", s.CreateMembership)
		r.Post("/contact", s.CreateContact)
		r.Post("/auth/login", s.Login)
		r.Get("/programs", s.ListPrograms)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Put("/programs", s.ReplacePrograms)
			r.Get("/memberships", s.ListMemberships)
			r.Get("/contact", s.ListContacts)
		})
	})

	if opts.StaticDir != "" {
		r.NotFound(staticSite(opts.StaticDir))
	} else {
		r.NotFound(jsonNotFound)
	}
	r.MethodNotAllowed(jsonMethodNotAllowed)
	return r
}
