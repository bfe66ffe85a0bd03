package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/internal/identity/store"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/slogx"

	_ "github.com/authapp/identity/api/identity" // Swagger docs
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		corsMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity Service API
//	@version		0.1.0
//	@description	Account and session management service. Credentials are verified
//	@description	against salted argon2id hashes and successful logins are issued an
//	@description	opaque, revocable session handle.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque session handle. Format: "Bearer {handle}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	sessionHandler := &SessionHandler{AuthService: r.AuthService}
	changePasswordHandler := &ChangePasswordHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit by IP + email to slow brute force
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - moderate rate limit, no auth required (idempotent)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /session - lenient, clients may poll to keep UI state fresh
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(sessionHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /change-password - strict rate limit (credential verification)
	r.Mux.Handle("POST /v1/auth/change-password",
		httpx.Chain(changePasswordHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// All account management requires an admin session.
	admin := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.SessionAuthMiddleware(r.AuthService),
			httpx.RequireAnyRole("ADMIN"),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/users", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/users", admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/users/stats", admin(http.HandlerFunc(h.HandleStats)))
	r.Mux.Handle("GET /v1/users/exists", admin(http.HandlerFunc(h.HandleExists)))
	r.Mux.Handle("GET /v1/users/search", admin(http.HandlerFunc(h.HandleSearch)))
	r.Mux.Handle("GET /v1/users/{id}", admin(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/users/{id}", admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/users/{id}", admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
