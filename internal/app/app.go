package app

import (
	"fmt"
	"net/http"

	"emailform/config"
	"emailform/internal/database"
	"emailform/internal/handler"
	"emailform/internal/middleware"
	"emailform/internal/repository"
	"emailform/internal/service"
	"emailform/pkg/email"
	"emailform/pkg/ratelimit"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Application struct {
	Router      *mux.Router
	Config      *config.Config
	Store       repository.EmailStore
	DBManager   *database.Manager
	RedisClient *redis.Client
	FormHandler *handler.FormHandler
	RateLimit   *middleware.RateLimitMiddleware
	logger      *zap.Logger
}

// New opens the storage backend once and builds every collaborator
// around that single handle.
func New(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{Config: cfg, logger: logger}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.Store = store

	var notifier email.Service
	if cfg.SMTPHost != "" {
		smtpService, err := email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		}, logger.Named("email"))
		if err != nil {
			logger.Warn("email service initialization failed, confirmations disabled", zap.Error(err))
		} else {
			notifier = smtpService
		}
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	flashes := middleware.NewFlashStore(sessionStore)

	controller := service.NewFormController(store, notifier, logger.Named("form"))
	formHandler, err := handler.NewFormHandler(controller, flashes, cfg.MessageTimeout, logger.Named("http"))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.FormHandler = formHandler
	a.RateLimit = middleware.NewRateLimitMiddleware(
		ratelimit.NewLimiter(cfg.RateLimitAttempts, cfg.RateLimitWindow),
		flashes,
		logger.Named("ratelimit"),
	)
	a.Router = mux.NewRouter()

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

func (a *Application) openStore() (repository.EmailStore, error) {
	cfg := a.Config

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		dbManager, err := database.NewManager(database.Config{
			ConnectionString: cfg.DatabaseURL,
			Host:             cfg.DBHost,
			Port:             cfg.DBPort,
			User:             cfg.DBUser,
			Password:         cfg.DBPassword,
			DBName:           cfg.DBName,
		}, a.logger.Named("database"))
		if err != nil {
			return nil, err
		}
		a.DBManager = dbManager
		return repository.NewPostgresEmailStore(dbManager.GetDB()), nil

	case config.BackendRedis:
		a.RedisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		a.logger.Info("using redis store", zap.String("addr", cfg.RedisAddr), zap.String("key", cfg.RedisKey))
		return repository.NewRedisEmailStore(a.RedisClient, cfg.RedisKey), nil

	case config.BackendFile:
		a.logger.Info("using file store", zap.String("path", cfg.EmailsFile))
		return repository.NewFileEmailStore(cfg.EmailsFile), nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func (a *Application) setupMiddleware() {
	a.Router.Use(securityHeadersMiddleware(a.Config.IsProduction()))

	if a.Config.IsProduction() {
		csrfOptions := []csrf.Option{
			csrf.Secure(true),
			csrf.HttpOnly(true),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
		}
		if a.Config.AppURL != "" {
			csrfOptions = append(csrfOptions, csrf.TrustedOrigins([]string{a.Config.AppURL}))
		}
		a.Router.Use(csrf.Protect([]byte(a.Config.CSRFSecret), csrfOptions...))
		a.logger.Info("CSRF protection enabled", zap.String("trusted_origin", a.Config.AppURL))
	} else {
		a.logger.Info("CSRF protection disabled in development mode")
	}
}

func securityHeadersMiddleware(isProduction bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self';")

			if isProduction {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000")
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *Application) setupRoutes() {
	a.Router.HandleFunc("/", a.FormHandler.Show).Methods("GET")
	a.Router.Handle("/", a.RateLimit.Limit(http.HandlerFunc(a.FormHandler.Submit))).Methods("POST")
	a.Router.HandleFunc("/healthz", a.FormHandler.Health).Methods("GET")
}

// Close releases the storage handle. It is called once at teardown.
func (a *Application) Close() error {
	if a.DBManager != nil {
		return a.DBManager.Close()
	}
	if a.RedisClient != nil {
		return a.RedisClient.Close()
	}
	return nil
}
