package http

import (
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/david-rosenfeld/r7dme-sub000/internal/content"
	"github.com/david-rosenfeld/r7dme-sub000/internal/session"
)

// adminPathPrefix marks the routes gated by a valid session token.
const adminPathPrefix = "/api/admin/"

// Options configures the HTTP server wiring.
type Options struct {
	Repository  content.Repository
	Sessions    *session.Manager
	AdminSecret string
	Database    *gorm.DB
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	LoginLimit  LoginLimitSettings
}

// LoginLimitSettings configures the login attempt rate limiter.
type LoginLimitSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the REST transport layer via Huma on top of the content
// repository and session manager.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	repository  content.Repository
	sessions    *session.Manager
	adminSecret string
	logger      *logrus.Logger
	sentry      *sentry.Hub
	db          *gorm.DB
	loginLimit  *RateLimiter
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Repository == nil {
		return nil, eris.New("content repository is required")
	}
	if opts.Sessions == nil {
		return nil, eris.New("session manager is required")
	}
	if opts.AdminSecret == "" {
		return nil, eris.New("admin secret is required")
	}
	if opts.Database == nil {
		return nil, eris.New("database is required")
	}

	settings := opts.LoginLimit
	if settings.Burst <= 0 {
		return nil, eris.New("login limit burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("login limit requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("login limit client TTL must be greater than zero")
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("Portfolio API", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:         api,
		mux:         mux,
		repository:  opts.Repository,
		sessions:    opts.Sessions,
		adminSecret: opts.AdminSecret,
		logger:      opts.Logger,
		sentry:      opts.SentryHub,
		db:          opts.Database,
		loginLimit:  NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL),
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.authMiddleware(),
		s.loginRateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.registerPublicRoutes()
	s.registerAuthRoutes()
	s.registerAdminPageRoutes()
	s.registerAdminSectionRoutes()
	s.registerAdminElementRoutes()
	s.registerAdminSettingRoutes()
	s.registerAdminCatalogRoutes()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
