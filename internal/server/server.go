package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/janus/apiserver/config"
	"github.com/janus/apiserver/internal/auth"
	"github.com/janus/apiserver/internal/db"
	"github.com/janus/apiserver/internal/handlers"
	"github.com/janus/apiserver/internal/services"
	"github.com/janus/apiserver/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const requestTimeout = 60 * time.Second

// Auditor is the audit surface shared by the login flow and the audit routes.
type Auditor interface {
	handlers.AuditRecorder
	handlers.AuditLister
}

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Users     handlers.Authenticator
	Personnel handlers.PersonnelService
	Vendors   handlers.VendorService
	Audit     Auditor
	JWTSecret string
	Port      int
	Logger    zerolog.Logger
}

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	logger     zerolog.Logger
}

// New opens the database, wires repositories and services, and builds the router.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, config.ErrMissingJWTSecret
	}

	dbConn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	auditService := services.NewAuditService(store.NewAuditRepository(dbConn))
	router := NewRouter(Dependencies{
		Users:     services.NewUserService(store.NewUserRepository(dbConn)),
		Personnel: services.NewPersonnelService(store.NewPersonnelRepository(dbConn), auditService),
		Vendors:   services.NewVendorService(store.NewVendorRepository(dbConn), auditService),
		Audit:     auditService,
		JWTSecret: cfg.JWTSecret,
		Port:      cfg.ServerPort,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		logger:     logger,
	}, nil
}

// NewRouter builds the HTTP surface. Every personnel, vendor and audit route
// sits behind the auth guard; login, health and the index do not.
func NewRouter(deps Dependencies) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		hlog.NewHandler(deps.Logger),
		hlog.RequestIDHandler("request_id", "X-Request-Id"),
		middleware.RealIP,
		hlog.RemoteAddrHandler("ip"),
		hlog.UserAgentHandler("user_agent"),
		hlog.AccessHandler(accessLog),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
	)

	handlers.HealthRouter(router, deps.Port)
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, deps.Users, deps.Audit, deps.JWTSecret)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware([]byte(deps.JWTSecret)))

		r.Route("/api/personnel", func(r chi.Router) {
			handlers.PersonnelRouter(r, deps.Personnel)
		})
		r.Route("/api/vendors", func(r chi.Router) {
			handlers.VendorRouter(r, deps.Vendors)
		})
		r.Route("/api/audit", func(r chi.Router) {
			handlers.AuditRouter(r, deps.Audit)
		})
	})

	return router
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires, then closes the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
