package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/cityscout-app/cityscout/internal/api/auth"
	"github.com/cityscout-app/cityscout/internal/api/favorites"
	"github.com/cityscout-app/cityscout/internal/api/geo"
	"github.com/cityscout-app/cityscout/internal/api/plan"
	"github.com/cityscout-app/cityscout/internal/api/profile"
	"github.com/cityscout-app/cityscout/internal/api/route"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.Handler
	GeoHandler             *geo.Handler
	RouteHandler           *route.Handler
	ProfileHandler         *profile.Handler
	FavoritesHandler       *favorites.Handler
	PlanHandler            *plan.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Post("/auth/verify", cfg.AuthHandler.Verify)
			r.Get("/geo/search", cfg.GeoHandler.SearchCities)
			r.Post("/geo/check-location", cfg.GeoHandler.CheckLocation)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/routes", cfg.RouteHandler.GenerateRoute)
			r.Get("/routes", cfg.RouteHandler.GetRouteHistory)

			r.Get("/profile", cfg.ProfileHandler.GetProfile)
			r.Post("/profile", cfg.ProfileHandler.UpsertProfile)

			r.Get("/favorites", cfg.FavoritesHandler.ListFavorites)
			r.Post("/favorites", cfg.FavoritesHandler.CreateFavorite)

			r.Post("/plan/recommendations", cfg.PlanHandler.GetRecommendations)
		})
	})

	return r
}
