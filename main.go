package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	database "github.com/cityscout-app/cityscout/app/db"
	appLogger "github.com/cityscout-app/cityscout/app/logger"
	appMiddleware "github.com/cityscout-app/cityscout/app/middleware"
	"github.com/cityscout-app/cityscout/app/observability/metrics"
	"github.com/cityscout-app/cityscout/app/tracer"
	"github.com/cityscout-app/cityscout/config"
	"github.com/cityscout-app/cityscout/internal/api/auth"
	"github.com/cityscout-app/cityscout/internal/api/favorites"
	generativeAI "github.com/cityscout-app/cityscout/internal/api/generative_ai"
	"github.com/cityscout-app/cityscout/internal/api/geo"
	"github.com/cityscout-app/cityscout/internal/api/plan"
	"github.com/cityscout-app/cityscout/internal/api/profile"
	"github.com/cityscout-app/cityscout/internal/api/route"
	api "github.com/cityscout-app/cityscout/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	promHandler := tracer.InitTracingAndMetrics()
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations *before* initializing the main pool
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Generation backend (optional by design) ---
	backend := generativeAI.UnconfiguredBackend()
	if apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey != "" {
		aiClient, err := generativeAI.NewAIClient(ctx, apiKey)
		if err != nil {
			logger.Error("Failed to initialize generation backend", slog.Any("error", err))
			os.Exit(1)
		}
		backend = generativeAI.NewBackend(aiClient)
	} else {
		logger.Warn("GOOGLE_GEMINI_API_KEY not set, route drafts will use the offline template")
	}

	// --- Dependency Injection ---
	geocoderClient := geo.NewGeocoderClient(cfg.Geocoder.BaseURL, os.Getenv("YANDEX_GEOCODER_KEY"))
	geoService := geo.NewService(geocoderClient, logger)
	geoHandler := geo.NewGeoHandler(geoService, logger)

	draftGenerator := route.NewAIDraftGenerator(backend, logger)
	routeRepo := route.NewRouteRepository(pool, logger)
	routeService := route.NewService(draftGenerator, geoService, routeRepo, logger)
	routeHandler := route.NewRouteHandler(routeService, metrics.Get(), logger)

	userRepo := auth.NewUserRepository(pool, logger)
	authService := auth.NewService(userRepo, os.Getenv("TELEGRAM_BOT_TOKEN"), logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	profileRepo := profile.NewProfileRepository(pool, logger)
	profileHandler := profile.NewProfileHandler(profileRepo, logger)

	favoritesRepo := favorites.NewFavoritesRepository(pool, logger)
	favoritesHandler := favorites.NewFavoritesHandler(favoritesRepo, logger)

	weatherClient := plan.NewWeatherClient(cfg.Weather.BaseURL, os.Getenv("OPENWEATHER_KEY"))
	planService := plan.NewService(weatherClient, backend, logger)
	planHandler := plan.NewPlanHandler(planService, logger)

	// --- Router Setup ---
	routerConfig := &api.Config{
		AuthHandler:            authHandler,
		GeoHandler:             geoHandler,
		RouteHandler:           routeHandler,
		ProfileHandler:         profileHandler,
		FavoritesHandler:       favoritesHandler,
		PlanHandler:            planHandler,
		AuthenticateMiddleware: appMiddleware.Authenticate,
	}
	mainRouter := api.SetupRouter(routerConfig)

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	// --- HTTP Servers ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promHandler)
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
		Handler: metricsMux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		err := metricsSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server graceful shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
