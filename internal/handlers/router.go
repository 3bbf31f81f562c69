package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Edinam27/blog-ready/internal/db"
	appmiddleware "github.com/Edinam27/blog-ready/internal/middleware"
)

// NewRouter wires the full route table. baseURL is the public site address
// used in sitemap locations; corsOrigins feeds the CORS middleware.
func NewRouter(store db.Store, baseURL string, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	posts := NewPostsHandler(store)
	categories := NewCategoriesHandler(store)
	users := NewUsersHandler(store)
	siteMap := NewSitemapHandler(store, baseURL)

	r.Get("/sitemap.xml", siteMap.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)

		// Public read endpoints get a light rate limit.
		publicLimiter := appmiddleware.NewRateLimiter(30, time.Minute)
		r.With(publicLimiter.Limit).Get("/posts", posts.List)
		r.With(publicLimiter.Limit).Get("/posts/{slug}", posts.GetBySlug)

		r.Post("/posts", posts.Create)
		r.Patch("/posts/{slug}", posts.Update)
		r.Delete("/posts/{slug}", posts.Delete)

		r.Get("/categories", categories.List)
		r.Post("/categories", categories.Create)
		r.Patch("/categories/{id}", categories.Update)

		r.Get("/users", users.List)
		r.Post("/users", users.Create)
		r.Patch("/users/{id}", users.Update)
	})

	return r
}
