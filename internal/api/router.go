package api

import (
	"net/http"
	"time"

	"sumo_console/internal/api/handler"
	"sumo_console/internal/api/middleware"
	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/console/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	v *view.Renderer,
	apiClient *backend.Client,
	once *service.OnceGuard,
	authService *service.AuthService,
	roundService *service.RoundService,
	competitionService *service.CompetitionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Landing: the dashboard guard decides where you really go.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Auth routes: an authenticated operator is bounced off the login page.
	authHandler := handler.NewAuthHandler(v, once, authService)
	r.Route("/auth", authHandler.RegisterRoutes)

	// Public results (no session required)
	publicHandler := handler.NewPublicHandler(v, once, apiClient)
	r.Route("/public", publicHandler.RegisterRoutes)

	// Dashboard (session required; token flows into backend calls via ctx)
	homeHandler := handler.NewHomeHandler(v, once)
	resourceHandler := handler.NewResourceHandler(v, once, apiClient)
	roundHandler := handler.NewRoundHandler(v, once, roundService)
	configHandler := handler.NewConfigHandler(v, once, competitionService)

	r.Route("/dashboard", func(dash chi.Router) {
		dash.Use(middleware.RequireSession)
		dash.Get("/", homeHandler.Page)
		resourceHandler.RegisterRoutes(dash)
		dash.Route("/rondas", roundHandler.RegisterRoutes)
		dash.Route("/configuracion", configHandler.RegisterRoutes)
	})

	return r
}
