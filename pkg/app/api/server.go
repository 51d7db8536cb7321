// Package api implements app.Runner for the API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foresightlabs/market-api/internal/metrics"
	apphttp "github.com/foresightlabs/market-api/pkg/app/http"
	"github.com/foresightlabs/market-api/pkg/auth"
	"github.com/foresightlabs/market-api/pkg/config"
	eventservice "github.com/foresightlabs/market-api/pkg/event/service"
	"github.com/foresightlabs/market-api/pkg/eventstore"
	loginservice "github.com/foresightlabs/market-api/pkg/login/service"
	"github.com/foresightlabs/market-api/pkg/moderation"
	"github.com/foresightlabs/market-api/pkg/noncestore"
	"github.com/foresightlabs/market-api/pkg/pgutil"
	profileservice "github.com/foresightlabs/market-api/pkg/user/service"
	"github.com/foresightlabs/market-api/pkg/userstore"
)

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	// Authentication fails closed: no secret, no server.
	sessionSecret, err := cfg.Auth.SessionSecret()
	if err != nil {
		return err
	}

	sessionManager, err := auth.NewSessionManager(sessionSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return fmt.Errorf("create session manager: %w", err)
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() { _ = db.Close() }()

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	nonceStore := noncestore.NewStore(db)
	userStore := userstore.NewStore(db)
	eventStore := eventstore.NewStore(db)

	moderator, err := s.openModerator(ctx, logger)
	if err != nil {
		return err
	}

	loginSvc := loginservice.NewService(
		nonceStore,
		userStore,
		sessionManager,
		cfg.Auth.NonceTTL,
		logger,
	)
	eventSvc := eventservice.NewService(eventStore, moderator, logger)
	profileSvc := profileservice.NewService(userStore, logger)

	router := s.setupRouter(
		loginservice.NewLog(loginSvc, logger),
		eventservice.NewLog(eventSvc, logger),
		profileSvc,
		sessionManager,
		logger,
	)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

// openModerator builds the Gemini classifier, or nil when moderation is
// disabled in config.
func (s *Server) openModerator(ctx context.Context, logger *zap.Logger) (moderation.Classifier, error) {
	if !s.cfg.Moderation.Enabled {
		logger.Warn("Content moderation disabled; event submissions will not be screened")
		return nil, nil
	}

	apiKey := os.Getenv(s.cfg.Moderation.APIKeyEnv)
	classifier, err := moderation.NewGeminiClassifier(ctx, apiKey, s.cfg.Moderation.Model)
	if err != nil {
		return nil, fmt.Errorf("create moderation classifier: %w", err)
	}

	logger.Info("Content moderation enabled", zap.String("model", s.cfg.Moderation.Model))
	return classifier, nil
}

func (s *Server) setupRouter(
	loginSvc loginservice.Service,
	eventSvc eventservice.Service,
	profileSvc profileservice.Service,
	sessionManager *auth.SessionManager,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	r.Use(metrics.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Sign-in flow and public reads
	loginservice.RegisterRoutes(r, loginSvc, loginservice.CookieSettings{
		Name:   auth.SessionCookieName,
		Secure: s.cfg.Auth.CookieSecure,
		MaxAge: s.cfg.Auth.SessionTTL,
	}, logger)
	eventservice.RegisterPublicRoutes(r, eventSvc, logger)

	// Everything mutating sits behind the session gate.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessionManager))
		eventservice.RegisterProtectedRoutes(r, eventSvc, logger)
		profileservice.RegisterRoutes(r, profileSvc, logger)
	})

	return r
}
