package api

import (
	"net/http"

	"github.com/gameboxed/gameboxed/internal/api/handlers"
	"github.com/gameboxed/gameboxed/internal/api/middleware"
	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.Auth, services.User)
	gameHandler := handlers.NewGameHandler(services.Game)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/logout", authHandler.Logout)
				r.Get("/check", authHandler.Check)

				r.With(middleware.RequireRole(domain.RoleAdmin)).
					Get("/admin-check", authHandler.AdminCheck)
				r.With(middleware.RequireRole(domain.RoleUser)).
					Get("/user-check", authHandler.UserCheck)
			})
		})

		// Game catalog
		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.GetAll)
			r.Get("/search", gameHandler.Search)
			r.Get("/{id}", gameHandler.Get)
			r.Get("/{id}/rating", gameHandler.GetRating)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.With(middleware.RequireRole(domain.RoleAdmin)).
					Post("/", gameHandler.Add)
				r.Post("/{id}/rate", gameHandler.Rate)
			})
		})

		// Admin-only account listing
		r.With(middleware.Auth(services.Auth), middleware.RequireRole(domain.RoleAdmin)).
			Get("/users", userHandler.List)

		// Current-user routes
		r.Route("/users/me", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Get("/", userHandler.Me)
			r.Put("/", userHandler.UpdateMe)
			r.Delete("/", userHandler.DeleteMe)
			r.Put("/password", userHandler.ChangePassword)

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", userHandler.GetFavorites)
				r.Post("/{gameID}", userHandler.AddFavorite)
				r.Delete("/{gameID}", userHandler.RemoveFavorite)
			})

			r.Route("/played", func(r chi.Router) {
				r.Get("/", userHandler.GetPlayed)
				r.Post("/", userHandler.AddPlayed)
				r.Delete("/{gameID}", userHandler.RemovePlayed)
			})
		})
	})

	return r
}
