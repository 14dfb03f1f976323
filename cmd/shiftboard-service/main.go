package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/events"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/handler"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/metrics"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/repository"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/service"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/source"
	"github.com/shiftboard/shiftboard-backend/pkg/config"
	"github.com/shiftboard/shiftboard-backend/pkg/database"
	"github.com/shiftboard/shiftboard-backend/pkg/httputil"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
	"github.com/shiftboard/shiftboard-backend/pkg/messaging"
)

const serviceName = "shiftboard-service"

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment)
	log.Info().Msg("starting Shiftboard Service")

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// RabbitMQ is optional; without it sync events are not published
	var (
		rmq       *messaging.RabbitMQ
		publisher *events.SyncEventPublisher
	)
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		publisher, err = events.NewSyncEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
	}

	syncMetrics := metrics.NewSyncMetrics(prometheus.DefaultRegisterer, metrics.Config{
		ServiceName: serviceName,
		Environment: cfg.Server.Environment,
	})

	shiftRepo := repository.NewShiftRepository(db)
	userRepo := repository.NewUserRepository(db)
	client := source.NewClient(cfg.Source, log)

	syncService := service.NewSyncService(client, shiftRepo, userRepo, publisher, syncMetrics, log)

	var scheduler *service.SyncScheduler
	if cfg.Sync.Enabled {
		scheduler = service.NewSyncScheduler(syncService, cfg.Sync.Interval, cfg.Sync.RunOnStart, log)
		scheduler.Start(ctx)
	}

	shiftHandler := handler.NewShiftHandler(syncService, log)
	analyticsHandler := handler.NewAnalyticsHandler(syncService, log)
	syncHandler := handler.NewSyncHandler(syncService, log)

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		dbHealth := db.Health(r.Context())
		status := map[string]interface{}{
			"status":   "healthy",
			"service":  serviceName,
			"database": dbHealth,
		}
		code := http.StatusOK
		if dbHealth["status"] != "up" {
			status["status"] = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		if rmq != nil {
			mq := rmq.Health()
			status["rabbitmq"] = mq
			if mq["status"] != "up" && code == http.StatusOK {
				status["status"] = "degraded"
			}
		}
		httputil.JSON(w, code, status)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		handler.Routes(r, shiftHandler, analyticsHandler, syncHandler)
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Stop the scheduler; an in-flight run finishes first
	cancel()
	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
