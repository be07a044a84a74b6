package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
	"github.com/aussiebroadwan/tasktab/pkg/jwtx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService      *service.AuthService
	UserService      *service.UserService
	AdminService     *service.AdminService
	TaskService      *service.TaskService
	ResetService     *service.ResetService
	RecoveryService  *service.RecoveryService
	DashboardService *service.DashboardService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (rt *Router) ApplyRoutes() {
	rt.registerAuth()
	rt.registerTasks()
	rt.registerAdmin()
	rt.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

func (rt *Router) registerAuth() {
	auth := &AuthHandler{AuthService: rt.AuthService, UserService: rt.UserService}
	reset := &ResetHandler{ResetService: rt.ResetService}

	// Credential endpoints get the strict limit; they are the brute-force
	// surface.
	rt.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(auth.HandleRegister),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	rt.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(auth.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	rt.Mux.Handle("POST /v1/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(reset.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	rt.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(http.HandlerFunc(reset.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))

	rt.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(auth.HandleMe),
			rt.authenticate,
			httpx.RateLimitByPrincipal(httpx.LenientLimit),
		))
}

func (rt *Router) registerTasks() {
	tasks := &TasksHandler{TaskService: rt.TaskService}

	guarded := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			rt.authenticate,
			httpx.RateLimitByPrincipal(httpx.LenientLimit),
		)
	}

	rt.Mux.Handle("POST /v1/tasks", guarded(tasks.HandleCreate))
	rt.Mux.Handle("GET /v1/tasks", guarded(tasks.HandleList))
	rt.Mux.Handle("PUT /v1/tasks/{id}", guarded(tasks.HandleUpdate))
	rt.Mux.Handle("DELETE /v1/tasks/{id}", guarded(tasks.HandleDelete))
	rt.Mux.Handle("PATCH /v1/tasks/{id}/toggle", guarded(tasks.HandleToggle))
}

func (rt *Router) registerAdmin() {
	auth := &AdminAuthHandler{
		AuthService:     rt.AuthService,
		AdminService:    rt.AdminService,
		RecoveryService: rt.RecoveryService,
	}
	users := &AdminUsersHandler{UserService: rt.UserService}
	tasks := &AdminTasksHandler{TaskService: rt.TaskService}
	dashboard := &DashboardHandler{DashboardService: rt.DashboardService}

	rt.Mux.Handle("POST /v1/admin/login",
		httpx.Chain(http.HandlerFunc(auth.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))

	// Public but secret-gated: the break-glass path must work when nobody
	// can authenticate.
	rt.Mux.Handle("POST /v1/admin/reset-superadmin",
		httpx.Chain(http.HandlerFunc(auth.HandleResetSuperAdmin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))

	admin := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			rt.authenticate,
			rt.requireAdmin,
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		)
	}

	rt.Mux.Handle("GET /v1/admin/dashboard", admin(dashboard.HandleStats))

	rt.Mux.Handle("GET /v1/admin/profile", admin(auth.HandleGetProfile))
	rt.Mux.Handle("PUT /v1/admin/profile", admin(auth.HandleUpdateProfile))
	rt.Mux.Handle("PUT /v1/admin/change-password", admin(auth.HandleChangePassword))

	rt.Mux.Handle("GET /v1/admin/users", admin(users.HandleList))
	rt.Mux.Handle("POST /v1/admin/users", admin(users.HandleCreate))
	rt.Mux.Handle("PUT /v1/admin/users/{id}", admin(users.HandleUpdate))
	rt.Mux.Handle("DELETE /v1/admin/users/{id}", admin(users.HandleDelete))

	rt.Mux.Handle("GET /v1/admin/tasks", admin(tasks.HandleList))
	rt.Mux.Handle("POST /v1/admin/tasks", admin(tasks.HandleCreate))
	rt.Mux.Handle("PUT /v1/admin/tasks/{id}", admin(tasks.HandleUpdate))
	rt.Mux.Handle("DELETE /v1/admin/tasks/{id}", admin(tasks.HandleDelete))
	rt.Mux.Handle("PATCH /v1/admin/tasks/{id}/toggle", admin(tasks.HandleToggle))
}

func (rt *Router) registerSystem() {
	rt.Mux.Handle("GET /livez", LivezHandler(rt.startTime, rt.buildVersion))
	rt.Mux.Handle("GET /readyz", ReadyzHandler(rt.startTime, rt.buildVersion, rt.store))
}
