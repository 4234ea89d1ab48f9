package http

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/jwtx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"

	_ "github.com/aussiebroadwan/spotter/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits are the per-profile limits applied by the router.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultRateLimits returns the built-in profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Public:   httpx.PublicLimit,
	}
}

// WithDefaults returns l with every unset profile replaced by its built-in
// counterpart. A zero request count, window or burst would reject all traffic.
func (l RateLimits) WithDefaults() RateLimits {
	def := DefaultRateLimits()
	return RateLimits{
		Strict:   fillLimit(l.Strict, def.Strict),
		Moderate: fillLimit(l.Moderate, def.Moderate),
		Public:   fillLimit(l.Public, def.Public),
	}
}

func fillLimit(cfg, def httpx.RateLimitConfig) httpx.RateLimitConfig {
	if cfg.RequestsPerWindow <= 0 || cfg.Window <= 0 {
		return def
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	return cfg
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	routes      []string

	verifier     jwtx.Verifier
	portal       domain.PortalType
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	db           Pinger

	Sessions Pinger           // Optional: checked by /readyz when set
	Metrics  *metrics.Metrics // Optional: /metrics and request metrics
	Limits   RateLimits
	AppURL   string

	ImpersonationService *service.ImpersonationService
	AuditService         *service.AuditService
	ShellService         *service.ShellService
	CalendarService      *service.CalendarService
	IntegrationsService  *service.IntegrationsService
}

func NewRouter(
	verifier jwtx.Verifier,
	portal domain.PortalType,
	buildVersion string,
	db Pinger,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		portal:       portal,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		db:           db,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}
}

func (r *Router) ApplyRoutes() {
	// Access log outermost so it sees the final status; metrics read the
	// matched pattern after the mux has run.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if r.Metrics != nil {
		r.middlewares = append(r.middlewares, r.Metrics.Middleware)
	}

	r.registerImpersonation()
	r.registerAdmin()
	r.registerIdentity()
	r.registerCalendar()
	r.registerPortal()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// Routes returns the registered patterns in sorted order.
func (r *Router) Routes() []string {
	out := slices.Clone(r.routes)
	slices.Sort(out)
	return out
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Spotter Portal API
//	@version		0.1.0
//	@description	Backend for the owner, member, admin and booking portals: admin impersonation,
//	@description	portal shell selection and calendar integration.
//	@description
//	@description				Bearer tokens are issued by the managed auth backend and signed with HS256.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/spotter
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) handle(pattern string, h http.Handler) {
	r.routes = append(r.routes, pattern)
	r.Mux.Handle(pattern, h)
}

func (r *Router) byIP(cfg httpx.RateLimitConfig, profile string) httpx.Middleware {
	return httpx.RateLimitByIP(cfg, httpx.WithRejectHook(r.Metrics.RateLimited(profile)))
}

func (r *Router) bySubject(cfg httpx.RateLimitConfig, profile string) httpx.Middleware {
	return httpx.RateLimitBySubject(cfg, httpx.WithRejectHook(r.Metrics.RateLimited(profile)))
}

func (r *Router) registerImpersonation() {
	h := &ImpersonationHandler{Service: r.ImpersonationService}

	// GET /status never fails, so anonymous callers just see no session
	r.handle("GET /api/admin/impersonation/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.OptionalAuthnMiddleware(r.verifier),
			r.byIP(r.Limits.Moderate, "moderate"),
		),
	)

	r.handle("POST /api/admin/impersonation/stop",
		httpx.Chain(http.HandlerFunc(h.HandleStop),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin(),
			r.bySubject(r.Limits.Moderate, "moderate"),
		),
	)

	// POST /start - strict: step-up codes are guessable
	r.handle("POST /api/admin/impersonation/start",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin(),
			r.bySubject(r.Limits.Strict, "strict"),
		),
	)
}

func (r *Router) registerAdmin() {
	audit := &AuditHandler{AuditService: r.AuditService}

	r.handle("GET /api/admin/audit",
		httpx.Chain(audit,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin(),
			r.bySubject(r.Limits.Moderate, "moderate"),
		),
	)
	r.handle("GET /api/admin/integrations",
		httpx.Chain(IntegrationsHandler(r.IntegrationsService),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin(),
			r.bySubject(r.Limits.Moderate, "moderate"),
		),
	)
}

func (r *Router) registerIdentity() {
	r.handle("GET /api/me",
		httpx.Chain(MeHandler(),
			httpx.AuthnMiddleware(r.verifier),
			ActingAsMiddleware(r.ImpersonationService),
			r.bySubject(r.Limits.Moderate, "moderate"),
		),
	)
}

func (r *Router) registerCalendar() {
	h := &CalendarHandler{CalendarService: r.CalendarService, AppURL: r.AppURL}

	r.handle("GET /api/auth/google",
		httpx.Chain(http.HandlerFunc(h.HandleConsent),
			httpx.OptionalAuthnMiddleware(r.verifier),
			ActingAsMiddleware(r.ImpersonationService),
			r.byIP(r.Limits.Moderate, "moderate"),
		),
	)
	r.handle("GET /api/auth/google/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			r.byIP(r.Limits.Strict, "strict"),
		),
	)
	r.handle("GET /api/calendar/connection",
		httpx.Chain(http.HandlerFunc(h.HandleGetConnection),
			httpx.AuthnMiddleware(r.verifier),
			r.bySubject(r.Limits.Moderate, "moderate"),
		),
	)
	r.handle("DELETE /api/calendar/connection",
		httpx.Chain(http.HandlerFunc(h.HandleDeleteConnection),
			httpx.AuthnMiddleware(r.verifier),
			r.bySubject(r.Limits.Moderate, "moderate"),
		),
	)
}

func (r *Router) registerPortal() {
	r.handle("GET /api/portal/shell",
		httpx.Chain(ShellHandler(r.ShellService),
			r.byIP(r.Limits.Public, "public"),
		),
	)
	r.handle("GET /api/public-api/test",
		httpx.Chain(PublicAPITestHandler(r.Routes),
			r.byIP(r.Limits.Public, "public"),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limits (monitoring systems may poll frequently)
	r.handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion, string(r.portal)),
			r.byIP(r.Limits.Public, "public"),
		),
	)
	r.handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, string(r.portal), r.db, r.Sessions),
			r.byIP(r.Limits.Public, "public"),
		),
	)
	if r.Metrics != nil {
		r.handle("GET /metrics", r.Metrics.Handler())
	}
}
