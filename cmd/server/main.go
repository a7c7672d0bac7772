package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/beiramar/pousada/internal/api"
	"github.com/beiramar/pousada/internal/api/middleware"
	"github.com/beiramar/pousada/internal/auth"
	"github.com/beiramar/pousada/internal/booking"
	"github.com/beiramar/pousada/internal/config"
	"github.com/beiramar/pousada/internal/database"
	"github.com/beiramar/pousada/internal/housekeeper"
	"github.com/beiramar/pousada/internal/identity"
	"github.com/beiramar/pousada/internal/media"
	"github.com/beiramar/pousada/internal/menu"
	"github.com/beiramar/pousada/internal/metrics"
	"github.com/beiramar/pousada/internal/post"
	"github.com/beiramar/pousada/internal/product"
	"github.com/beiramar/pousada/internal/profile"
	"github.com/beiramar/pousada/internal/room"
	"github.com/beiramar/pousada/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	mediaStore, err := media.NewStore(ctx, media.Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		UsePathStyle:  cfg.S3UsePathStyle,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	// Long-lived clients are built once here and injected everywhere.
	identityClient := identity.NewClient(cfg.AuthURL, cfg.AuthAnonKey)
	profileRepo := profile.NewRepository(db.Pool())
	resolver := auth.NewResolver(identityClient, cfg.SessionCookieName)
	gate := auth.NewGate(cfg.AdminEmail, profileRepo)

	collector := metrics.NewCollector(prometheus.NewRegistry())

	publicLimiter := middleware.NewRateLimiter(cfg.PublicRatePerMinute, collector)
	bookingLimiter := middleware.NewRateLimiter(cfg.BookingRatePerMinute, collector)
	defer publicLimiter.Stop()
	defer bookingLimiter.Stop()

	bookingRepo := booking.NewRepository(db.Pool())

	router := api.NewRouter(api.RouterDeps{
		DBPinger:   db,
		Version:    cfg.Version,
		AdminEmail: cfg.AdminEmail,

		Resolver:  resolver,
		Gate:      gate,
		Collector: collector,

		PublicLimiter:  publicLimiter,
		BookingLimiter: bookingLimiter,

		MenuRepo:    menu.NewRepository(db.Pool()),
		ProductRepo: product.NewRepository(db.Pool()),
		RoomRepo:    room.NewRepository(db.Pool()),
		PostRepo:    post.NewRepository(db.Pool()),
		BookingRepo: bookingRepo,
		ProfileRepo: profileRepo,

		Sanitizer:  security.NewSanitizer(),
		MediaStore: mediaStore,
	})

	hk := housekeeper.New(
		bookingRepo,
		collector,
		time.Duration(cfg.HousekeeperInterval)*time.Minute,
		time.Duration(cfg.BookingPendingTTL)*time.Minute,
	)
	go hk.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
