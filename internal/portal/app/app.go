package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/spotter/internal/portal/http"
	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/postgres"
	redisstore "github.com/aussiebroadwan/spotter/internal/portal/store/drivers/redis"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/spotter/internal/portal/supabase"
	"github.com/aussiebroadwan/spotter/pkg/cryptox"
	"github.com/aussiebroadwan/spotter/pkg/jwtx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"github.com/go-redis/redis/v8"
)

// BuildVersion is overridden at build time via -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// Application encapsulates the portal service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	rdb       *redis.Client // nil unless SESSION_STORE=redis
	sessions  store.ImpersonationSessions
	verifier  jwtx.Verifier
	metrics   *metrics.Metrics
	directory *supabase.Client

	// Services
	auditService         *service.AuditService
	impersonationService *service.ImpersonationService
	shellService         *service.ShellService
	calendarService      *service.CalendarService
	integrationsService  *service.IntegrationsService
	housekeepingService  *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "portal-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Portal:  string(cfg.Portal),
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: metrics.New(),
	}

	ctx := context.Background()
	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", "driver", cfg.StoreDriver)

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeStores()
		return nil, err
	}

	if cfg.SeedFile != "" {
		if err := app.seed(ctx); err != nil {
			app.closeStores()
			return nil, err
		}
	}

	app.initHTTP()
	return app, nil
}

// OpenStore connects to the configured store and applies migrations.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		db, err = postgres.NewStore(ctx, postgres.Config{DSN: cfg.DatabaseURL})
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("portal service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"portal", app.cfg.Portal,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		app.closeStores()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("portal service stopped")
	return nil
}

// Handler exposes the router, mostly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) closeStores() error {
	var errs []error
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) initSessions() error {
	if app.cfg.SessionStore != SessionStoreRedis {
		app.sessions = app.db.ImpersonationSessions()
		return nil
	}

	rdb, err := redisstore.NewClient(app.cfg.RedisURL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.rdb = rdb
	app.sessions = redisstore.NewSessions(rdb)
	app.logger.Info("impersonation sessions stored in redis")
	return nil
}

func (app *Application) initServices() error {
	cfg := app.cfg

	if cfg.SupabaseJWTSecret == "" {
		app.logger.Warn("SUPABASE_JWT_SECRET is not set; authenticated requests will be rejected")
		app.verifier = jwtx.Unconfigured{}
	} else {
		v, err := jwtx.NewHS256([]byte(cfg.SupabaseJWTSecret), jwtx.VerifyOptions{
			Audience: cfg.JWTAudience,
			Leeway:   30 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("invalid SUPABASE_JWT_SECRET: %w", err)
		}
		app.verifier = v
	}

	app.directory = supabase.New(supabase.Config{
		URL:            cfg.SupabaseURL,
		ServiceRoleKey: cfg.SupabaseServiceRoleKey,
	})

	app.auditService = &service.AuditService{Store: app.db}
	app.impersonationService = &service.ImpersonationService{
		Store:    app.db,
		Sessions: app.sessions,
		Audit:    app.auditService,
		Metrics:  app.metrics,
		TTL:      cfg.ImpersonationTTL,
	}
	if app.directory.Configured() {
		app.impersonationService.Directory = app.directory
	}

	registry, err := service.DefaultShellRegistry()
	if err != nil {
		return err
	}
	app.shellService = &service.ShellService{
		Portal:   cfg.Portal,
		Registry: registry,
		URLs:     cfg.PortalURLs,
	}

	app.calendarService = &service.CalendarService{
		Store:   app.db,
		OAuth:   service.NewGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
		Audit:   app.auditService,
		Metrics: app.metrics,
	}
	if len(cfg.MasterKey) > 0 {
		sealer, err := cryptox.NewSealer(cfg.MasterKey, "calendar")
		if err != nil {
			return fmt.Errorf("invalid MASTER_KEY: %w", err)
		}
		app.calendarService.Sealer = sealer
	}
	if !app.calendarService.Configured() {
		app.logger.Info("google calendar integration disabled")
	}

	app.integrationsService = &service.IntegrationsService{
		Directory:        app.directory,
		Calendar:         app.calendarService,
		StripeConfigured: cfg.StripeSecretKey != "",
		OpenAIConfigured: cfg.OpenAIAPIKey != "",
		RedisConfigured:  app.rdb != nil,
	}

	hk, err := service.NewHousekeepingService(
		app.impersonationService,
		app.calendarService,
		app.metrics,
		app.logger,
		cfg.HousekeepingSchedule,
	)
	if err != nil {
		return err
	}
	app.housekeepingService = hk
	return nil
}

func (app *Application) seed(ctx context.Context) error {
	f, err := os.Open(app.cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	svc := &service.SeedService{Store: app.db}
	res, err := svc.Import(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to import seed file: %w", err)
	}
	app.logger.Info("seed file imported",
		"file", app.cfg.SeedFile,
		"organizations", res.Organizations,
		"users", res.Users,
	)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		app.cfg.Portal,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Metrics = app.metrics
	router.Limits = app.cfg.RateLimits.WithDefaults()
	router.AppURL = app.cfg.AppURL
	if app.rdb != nil {
		router.Sessions = app.sessions.(httpapi.Pinger)
	}

	router.ImpersonationService = app.impersonationService
	router.AuditService = app.auditService
	router.ShellService = app.shellService
	router.CalendarService = app.calendarService
	router.IntegrationsService = app.integrationsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
