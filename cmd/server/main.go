package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/db"
	"appraisal/internal/domain/committee"
	"appraisal/internal/domain/evaluation"
	"appraisal/internal/domain/period"
	"appraisal/internal/domain/reports"
	"appraisal/internal/domain/rubric"
	"appraisal/internal/domain/scoring"
	"appraisal/internal/domain/users"
	"appraisal/internal/platform/config"
	"appraisal/internal/platform/metrics"
	authhandler "appraisal/internal/transport/http/handlers/auth"
	committeehandler "appraisal/internal/transport/http/handlers/committee"
	evaluationhandler "appraisal/internal/transport/http/handlers/evaluations"
	periodhandler "appraisal/internal/transport/http/handlers/periods"
	reporthandler "appraisal/internal/transport/http/handlers/reports"
	rubrichandler "appraisal/internal/transport/http/handlers/rubric"
	userhandler "appraisal/internal/transport/http/handlers/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

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
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	usersSvc := users.NewService(users.NewStore(pool))
	periodSvc := period.NewService(period.NewStore(pool))
	rubricSvc := rubric.NewService(rubric.NewStore(pool))
	committeeSvc := committee.NewService(committee.NewStore(pool))
	evaluationSvc := evaluation.NewService(evaluation.NewStore(pool), periodSvc, committeeSvc)
	scoringSvc := scoring.NewService(scoring.NewStore(pool))
	reportsSvc := reports.NewService(reports.NewStore(pool), evaluationSvc, scoringSvc)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
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

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(usersSvc, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		userhandler.NewHandler(usersSvc).RegisterRoutes(r)
		periodhandler.NewHandler(periodSvc).RegisterRoutes(r)
		rubrichandler.NewHandler(rubricSvc).RegisterRoutes(r)
		committeehandler.NewHandler(committeeSvc).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationSvc).RegisterRoutes(r)
		reporthandler.NewHandler(reportsSvc, scoringSvc).RegisterRoutes(r)
	})

	slog.Info("appraisal server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
