package api

import (
	"net/http"

	"github.com/blogit/blogit-api/internal/api/handlers"
	"github.com/blogit/blogit-api/internal/api/middleware"
	"github.com/blogit/blogit-api/internal/config"
	"github.com/blogit/blogit-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigin: cfg.ClientOrigin}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<h1>Welcome to the Blogit API</h1>"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	blogHandler := handlers.NewBlogHandler(services.Blog)

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Token sanity check
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))
		r.Get("/protected", authHandler.Protected)
	})

	r.Route("/api", func(r chi.Router) {
		// Public read routes
		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/{id}", blogHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/blogs", blogHandler.Create)
			r.Patch("/blogs/{id}", blogHandler.Update)
			r.Delete("/blogs/{id}", blogHandler.Delete)
			r.Get("/user/blogs", blogHandler.ListMine)
		})
	})

	// Public view of one author's blogs
	r.Get("/blogs/user/{userId}", blogHandler.ListByUser)

	return r
}
