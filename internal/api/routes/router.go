package routes

import (
	"net/http"

	"github.com/zatekoja/satisfaction-feedback/internal/api/handlers"
	"github.com/zatekoja/satisfaction-feedback/internal/api/middleware"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	feedbackHandler  *handlers.FeedbackHandler
	statusHandler    *handlers.StatusHandler
	adminAuthHandler *handlers.AdminAuthHandler
	reportHandler    *handlers.ReportHandler
	exportHandler    *handlers.ExportHandler

	sessions       middleware.SessionResolver
	cookieName     string
	allowedOrigins []string
	metrics        *observability.Metrics
}

// Options carries the cross-cutting router settings.
type Options struct {
	Sessions       middleware.SessionResolver
	CookieName     string
	AllowedOrigins []string
	Metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	feedbackHandler *handlers.FeedbackHandler,
	statusHandler *handlers.StatusHandler,
	adminAuthHandler *handlers.AdminAuthHandler,
	reportHandler *handlers.ReportHandler,
	exportHandler *handlers.ExportHandler,
	opts Options,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		feedbackHandler:  feedbackHandler,
		statusHandler:    statusHandler,
		adminAuthHandler: adminAuthHandler,
		reportHandler:    reportHandler,
		exportHandler:    exportHandler,
		sessions:         opts.Sessions,
		cookieName:       opts.CookieName,
		allowedOrigins:   opts.AllowedOrigins,
		metrics:          opts.Metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Public endpoints
	r.mux.HandleFunc("GET /health", r.statusHandler.Health)
	r.mux.HandleFunc("POST /feedback", r.feedbackHandler.SubmitFeedback)
	r.mux.HandleFunc("GET /public/summary", r.statusHandler.PublicSummary)

	// Admin session endpoints
	r.mux.HandleFunc("GET /admin/login/config", r.adminAuthHandler.LoginConfig)
	r.mux.HandleFunc("POST /admin/login", r.adminAuthHandler.Login)
	r.mux.HandleFunc("POST /admin/logout", r.adminAuthHandler.Logout)
	r.mux.HandleFunc("GET /admin/me", r.adminAuthHandler.Me)

	// Admin-gated endpoints
	r.admin("GET /admin/stats", r.reportHandler.Stats)
	r.admin("GET /admin/stats/daily", r.reportHandler.DailyStats)
	r.admin("GET /admin/stats/comparison", r.reportHandler.ComparisonStats)
	r.admin("GET /admin/history", r.reportHandler.History)
	r.admin("GET /admin/dates", r.reportHandler.Dates)
	r.admin("GET /admin/system", r.statusHandler.System)
	r.admin("GET /admin/export/{format}", r.exportHandler.Export)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	if r.sessions != nil {
		handler = middleware.SessionMiddleware(r.sessions, r.cookieName)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so preflights never reach the handlers
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) admin(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.RequireAdmin(h))
}
