package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	httpapi "github.com/aussiebroadwan/spotter/internal/portal/http"
	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/joho/godotenv"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"

	SessionStoreDB    = "db"
	SessionStoreRedis = "redis"
)

type Config struct {
	Portal     domain.PortalType            // Required: which portal this deployment serves
	AppURL     string                       // Optional: public URL of this portal (default: the portal's URL)
	PortalURLs map[domain.PortalType]string // Optional: base URLs of every portal, for cross links

	SupabaseURL            string // Optional: managed auth directory
	SupabaseServiceRoleKey string // Optional: required for directory lookups
	SupabaseJWTSecret      string // Optional: without it every authenticated request fails
	JWTAudience            string // Optional: expected aud claim (default: none)

	GoogleClientID     string // Optional: calendar integration
	GoogleClientSecret string
	GoogleRedirectURL  string // Optional (default: {AppURL}/api/auth/google/callback)

	StripeSecretKey string // Optional: only reported by /api/admin/integrations
	OpenAIAPIKey    string // Optional: only reported by /api/admin/integrations

	StoreDriver  string // sqlite or postgres (default: sqlite)
	DatabaseFile string // SQLite file (default: ./portal.db)
	DatabaseURL  string // Postgres DSN, required for the postgres driver
	SessionStore string // db or redis (default: db)
	RedisURL     string // Required for the redis session store

	ImpersonationTTL     time.Duration // Session lifetime, 0 disables expiry (default: 2h)
	MasterKey            []byte        // Optional: seals calendar tokens, decoded from base64 when possible
	HousekeepingSchedule string        // cron expression or descriptor (default: @every 1m)
	SeedFile             string        // Optional: YAML organizations/users imported at start-up

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	RateLimits          httpapi.RateLimits
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	portalURLs := map[domain.PortalType]string{
		domain.PortalOwner:   os.Getenv("OWNER_PORTAL_URL"),
		domain.PortalMember:  os.Getenv("MEMBER_PORTAL_URL"),
		domain.PortalAdmin:   os.Getenv("ADMIN_PORTAL_URL"),
		domain.PortalBooking: os.Getenv("BOOKING_PORTAL_URL"),
	}

	cfg := Config{
		Portal:     domain.PortalType(strings.ToLower(strings.TrimSpace(os.Getenv("PORTAL")))),
		AppURL:     firstEnv("APP_URL", "NEXT_PUBLIC_APP_URL"),
		PortalURLs: portalURLs,

		SupabaseURL:            firstEnv("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
		JWTAudience:            os.Getenv("JWT_AUDIENCE"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),

		StoreDriver:  strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreDriverSQLite)),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "portal.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SessionStore: strings.ToLower(getEnvOrDefault("SESSION_STORE", SessionStoreDB)),
		RedisURL:     os.Getenv("REDIS_URL"),

		ImpersonationTTL:     getEnvDurationOrDefault("IMPERSONATION_TTL", service.DefaultImpersonationTTL),
		MasterKey:            decodeKey(os.Getenv("MASTER_KEY")),
		HousekeepingSchedule: getEnvOrDefault("HOUSEKEEPING_SCHEDULE", service.DefaultHousekeepingSchedule),
		SeedFile:             os.Getenv("SEED_FILE"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RateLimits: httpapi.RateLimits{
			Strict:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
			Moderate: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
			Public:   httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
		},
	}

	if cfg.AppURL == "" {
		cfg.AppURL = portalURLs[cfg.Portal]
	}
	if cfg.GoogleRedirectURL == "" && cfg.AppURL != "" {
		cfg.GoogleRedirectURL = strings.TrimSuffix(cfg.AppURL, "/") + "/api/auth/google/callback"
	}

	return cfg
}

// Validate reports misconfiguration that must stop the process. Missing
// integration secrets are not errors here; they fail on first use.
func (c Config) Validate() error {
	var errs []error

	if c.Portal == "" {
		errs = append(errs, errors.New("PORTAL is required (owner, member, admin or booking)"))
	} else if _, err := domain.ParsePortalType(string(c.Portal)); err != nil {
		errs = append(errs, fmt.Errorf("PORTAL: %w", err))
	}

	switch c.StoreDriver {
	case StoreDriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite store"))
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of sqlite, postgres", c.StoreDriver))
	}

	switch c.SessionStore {
	case SessionStoreDB:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE %q is not one of db, redis", c.SessionStore))
	}

	if c.ImpersonationTTL < 0 {
		errs = append(errs, errors.New("IMPERSONATION_TTL must not be negative"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "2h", "30m", "0")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func decodeKey(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) >= 32 {
		return b
	}
	return []byte(s)
}
