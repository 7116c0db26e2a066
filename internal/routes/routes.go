package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/templui/goaltrack/internal/app"
	"github.com/templui/goaltrack/internal/handler"
	"github.com/templui/goaltrack/internal/middleware"
	"github.com/templui/goaltrack/internal/render"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService, app.ExportService, app.Cfg.Location)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth (rate limited per IP)
	rateLimiter := middleware.RateLimit(middleware.NewRateLimiter(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow))

	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(goal.Dashboard))

	mux.HandleFunc("GET /app/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("GET /app/goals/export", middleware.RequireAuth(goal.Export))
	mux.HandleFunc("GET /app/goals/{id}", middleware.RequireAuth(goal.Detail))
	mux.HandleFunc("POST /app/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("POST /app/goals/{id}/progress", middleware.RequireAuth(goal.RecordProgress))
	mux.HandleFunc("POST /app/progress", middleware.RequireAuth(goal.RecordProgress))
	mux.HandleFunc("DELETE /app/goals/{id}", middleware.RequireAuth(goal.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, http.StatusNotFound, render.ErrorDetail{Kind: render.KindNotFound, Message: "no route for " + r.Method + " " + r.URL.Path})
	})

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Metrics(mux),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
