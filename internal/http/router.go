package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campushire/internal/domain/user"
	"campushire/internal/http/handlers"
	"campushire/internal/http/metrics"
	httpmw "campushire/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ProfileHandler     *handlers.ProfileHandler
	OpportunityHandler *handlers.OpportunityHandler
	ApplicationHandler *handlers.ApplicationHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	AdminHandler       *handlers.AdminHandler
	WebhookHandler     *handlers.WebhookHandler
	MetricsHandler     *metrics.Handler
	AuthMiddleware     *httpmw.AuthMiddleware
	RateLimiter        httpmw.Limiter
	Metrics            *metrics.Collector
	Logger             *slog.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const (
	maxBodyBytes = 5 << 20

	// Ingress pushes come from one automation host; anything chattier than
	// this is a misbehaving client.
	webhookRateLimit = 30
)

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/signup":
			r.deps.AuthHandler.Signup(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/webhooks/company-profile":
			limited := httpmw.RateLimit(r.deps.RateLimiter, func(req *http.Request) string {
				return "webhook:" + httpmw.ClientIP(req)
			}, webhookRateLimit, time.Minute)
			limited(http.HandlerFunc(r.deps.WebhookHandler.IngestCompany)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/opportunities":
			r.deps.OpportunityHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/opportunities/"):
			r.deps.AuthMiddleware.OptionalAuthenticate(http.HandlerFunc(r.deps.OpportunityHandler.Get)).ServeHTTP(w, req)
			return
		}

		if isProtectedPath(path) {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func isProtectedPath(path string) bool {
	for _, prefix := range []string{"/auth/me", "/auth/logout-all", "/students", "/companies", "/opportunities", "/applications", "/admin"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/auth/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodPost && path == "/auth/logout-all":
		r.deps.AuthHandler.LogoutAll(w, req)
		return

	case req.Method == http.MethodGet && path == "/students/profile":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.GetStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/students/profile":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.UpdateStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/students/resume":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.UploadResume)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/resume":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.DownloadResume)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && path == "/students/resume":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.DeleteResume)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/students/saved-opportunities/toggle":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ProfileHandler.ToggleSaved)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/dashboard":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.AnalyticsHandler.StudentDashboard)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/companies/profile":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.GetCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/companies/profile":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.UpdateCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/companies/logo":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.UploadLogo)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/opportunities":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.OpportunityHandler.ListByCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/companies/opportunities/"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.OpportunityHandler.GetByCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/dashboard":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.AnalyticsHandler.CompanyReport)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/analytics":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.AnalyticsHandler.CompanyReport)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/opportunities":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.OpportunityHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/opportunities/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.OpportunityHandler.SetStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/opportunities/"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.OpportunityHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/opportunities/"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.OpportunityHandler.Delete)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Submit)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Withdraw)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return

	case req.Method == http.MethodGet && path == "/admin/overview":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AnalyticsHandler.AdminOverview)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/opportunities/pending":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.ListPending)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/admin/opportunities/") && strings.HasSuffix(path, "/activate"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.Activate)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/opportunities/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.Delete)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
