package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"appraisal/internal/config"
	"appraisal/internal/db"
	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/auth"
	appraisalhandler "appraisal/internal/transport/http/handlers/appraisal"
	authhandler "appraisal/internal/transport/http/handlers/auth"
	reportshandler "appraisal/internal/transport/http/handlers/reports"
	"appraisal/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	store := appraisal.NewStore(pool)
	if cfg.RunSeed {
		if err := db.Seed(ctx, store, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	service := appraisal.NewService(store)

	adminHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("admin credential setup failed: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(service, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminUsername, adminHash)
		authHandler.RegisterRoutes(r)

		workflowHandler := appraisalhandler.NewHandler(service, cfg.DefaultYear)
		workflowHandler.RegisterRoutes(r)

		reportsHandler := reportshandler.NewHandler(service, cfg.DefaultYear)
		reportsHandler.RegisterRoutes(r)
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	log.Printf("appraisal server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, corsHandler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
