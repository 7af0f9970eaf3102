package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fathuur7/translate-backend/internal/api/handlers"
	"github.com/fathuur7/translate-backend/internal/api/middleware"
	"github.com/fathuur7/translate-backend/internal/auth"
	"github.com/fathuur7/translate-backend/internal/cache"
	"github.com/fathuur7/translate-backend/internal/config"
	"github.com/fathuur7/translate-backend/internal/db"
	"github.com/fathuur7/translate-backend/internal/job"
	"github.com/fathuur7/translate-backend/internal/pipeline"
)

func NewRouter(
	database *db.Database,
	jwtService *auth.JWTService,
	cfg *config.Config,
	jobs *job.Manager,
	resultCache *cache.ResultCache,
	service *pipeline.Service,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	translateHandler := handlers.NewTranslateHandler(service, cfg.WorkPath, cfg.MaxUploadBytes)
	jobHandler := handlers.NewJobHandler(jobs)
	cacheHandler := handlers.NewCacheHandler(resultCache)

	uploadLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Auth (public)
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(1 << 20))
			r.Post("/auth/login", authHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			r.Get("/auth/me", authHandler.Me)

			// Submit + polling
			r.With(uploadLimiter.Handler).Post("/translate", translateHandler.Submit)
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)

			// Admin
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Delete("/jobs/{id}", jobHandler.DeleteJob)
				r.Get("/cache/stats", cacheHandler.Stats)
				r.Post("/cache/clear", cacheHandler.Clear)
			})
		})
	})

	// Stored artifacts (videos, subtitle files)
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.UploadPath)))
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	return r
}
