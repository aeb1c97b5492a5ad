package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/zancompute/zanconfig/api/console" // Swagger docs
	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/internal/console/store"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// Options are the knobs of the console's HTTP surface.
type Options struct {
	// CSRFKey is the 32-byte key gorilla/csrf signs its tokens with.
	CSRFKey []byte

	// Secure marks cookies Secure and makes CSRF checks expect HTTPS.
	Secure bool

	// DashboardRefresh is how often the dashboard page reloads itself.
	DashboardRefresh time.Duration

	BuildVersion string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	opts      Options
	startTime time.Time
	logger    *slog.Logger
	views     *renderer

	store    store.Store
	api      *zanapi.Client
	sessions *session.Manager

	AuthService      *service.AuthService
	ProfileService   *service.ProfileService
	ClientsService   *service.ClientsService
	DashboardService *service.DashboardService
}

func NewRouter(
	opts Options,
	st store.Store,
	api *zanapi.Client,
	sessions *session.Manager,
	logger *slog.Logger,
) (*Router, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		opts:      opts,
		startTime: time.Now(),
		logger:    logger,
		views:     views,
		store:     st,
		api:       api,
		sessions:  sessions,

		AuthService:      &service.AuthService{API: api, Sessions: sessions},
		ProfileService:   &service.ProfileService{API: api, Sessions: sessions},
		ClientsService:   &service.ClientsService{API: api},
		DashboardService: &service.DashboardService{API: api},
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if !opts.Secure {
		r.middlewares = append(r.middlewares, plaintextHTTP)
	}
	r.middlewares = append(r.middlewares, csrf.Protect(opts.CSRFKey,
		csrf.Secure(opts.Secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(csrfField),
		csrf.ErrorHandler(http.HandlerFunc(r.csrfFailure)),
	))

	return r, nil
}

const csrfField = "csrf_token"

// plaintextHTTP tells gorilla/csrf the console is served over plain HTTP,
// which relaxes its HTTPS-only Referer check.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func (r *Router) csrfFailure(w http.ResponseWriter, req *http.Request) {
	slogx.FromContext(req.Context()).Warn("csrf check failed", "reason", csrf.FailureReason(req))
	http.Error(w, "Your form has expired. Reload the page and try again.", http.StatusForbidden)
}

// ApplyRoutes registers every route and seals the middleware chain. It must
// be called once before the router serves.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDashboard()
	r.registerClients()
	r.registerAccount()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Unknown paths land on the dashboard.
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		httpx.Redirect(w, req, "/")
	})

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ZanConfig Console API
//	@version		0.1.0
//	@description	JSON endpoints of the ZanConfig admin console. The console itself is server-rendered;
//	@description	these endpoints serve pollers and health probes.
//
//	@contact.name	ZanCompute Team
//	@contact.url	https://github.com/zancompute/zanconfig
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						zanconfig_session
//	@description				Session cookie set by POST /login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// secured guards h behind a live session and a per-operator rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.sessions, "/login"),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Sessions:    r.sessions,
		views:       r.views,
	}

	r.Mux.Handle("GET /login",
		httpx.Chain(http.HandlerFunc(h.HandleLoginForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /login - strict rate limit by IP + username to slow brute force
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username", h.rejectLogin),
		),
	)

	r.Mux.Handle("GET /register",
		httpx.Chain(http.HandlerFunc(h.HandleRegisterForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{
		DashboardService: r.DashboardService,
		Refresh:          r.opts.DashboardRefresh,
		views:            r.views,
	}

	r.Mux.Handle("GET /{$}", r.secured(http.HandlerFunc(h.HandleDashboard), httpx.LenientLimit))
	r.Mux.Handle("GET /dashboard/export", r.secured(http.HandlerFunc(h.HandleExport), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/lastupdated", r.secured(http.HandlerFunc(h.HandleLastUpdated), httpx.PublicLimit))
}

func (r *Router) registerClients() {
	h := &ClientsHandler{
		ClientsService: r.ClientsService,
		views:          r.views,
	}

	r.Mux.Handle("GET /clients", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /clients/export", r.secured(http.HandlerFunc(h.HandleExport), httpx.ModerateLimit))
	r.Mux.Handle("GET /clients/new", r.secured(http.HandlerFunc(h.HandleNewForm), httpx.LenientLimit))
	r.Mux.Handle("POST /clients/new", r.secured(http.HandlerFunc(h.HandleNew), httpx.ModerateLimit))
	r.Mux.Handle("GET /clients/{id}/edit", r.secured(http.HandlerFunc(h.HandleEditForm), httpx.LenientLimit))
	r.Mux.Handle("POST /clients/{id}/edit", r.secured(http.HandlerFunc(h.HandleEdit), httpx.ModerateLimit))
	r.Mux.Handle("POST /clients/{id}/delete", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerAccount() {
	h := &AccountHandler{
		ProfileService: r.ProfileService,
		views:          r.views,
	}

	r.Mux.Handle("GET /profile", r.secured(http.HandlerFunc(h.HandleProfile), httpx.LenientLimit))
	r.Mux.Handle("POST /profile", r.secured(http.HandlerFunc(h.HandleProfileUpdate), httpx.ModerateLimit))
	r.Mux.Handle("GET /change-password", r.secured(http.HandlerFunc(h.HandleChangePasswordForm), httpx.LenientLimit))
	r.Mux.Handle("POST /change-password", r.secured(http.HandlerFunc(h.HandleChangePassword), httpx.StrictLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.opts.BuildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.opts.BuildVersion, r.store, r.api, r.sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
