package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/shelfmark/internal/catalog"
	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/config"
	"github.com/segyhp/shelfmark/internal/handler"
	"github.com/segyhp/shelfmark/internal/notifier"
	"github.com/segyhp/shelfmark/internal/repository"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db); err != nil {
		log.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// Redis backs the notification queue only
	var redisClient *redis.Client
	if cfg.Notification.Sink == config.SinkRedis {
		redisClient = initRedis(cfg)
		defer redisClient.Close()
	}
	sink := initNotifier(cfg, redisClient, log)

	clk := clock.NewSystem()

	// Initialize repositories
	borrowRepo := repository.NewBorrowRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	borrowService := service.NewBorrowService(borrowRepo,
		service.WithClock(clk),
		service.WithLoanDays(cfg.Lending.DefaultLoanDays),
		service.WithLateFeePerDay(cfg.GetLateFeePerDay()),
	)
	wishlistService := service.NewWishlistService(wishlistRepo, borrowRepo, clk)
	reviewService := service.NewReviewService(reviewRepo, clk)
	authService := service.NewAuthService(userRepo, service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.GetJWTTTL(), clk), clk)

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.RPS, cfg.GetCatalogTimeout())

	// Setup routes
	router := handler.NewRouter(handler.Handlers{
		Auth:          authService,
		Health:        handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout()),
		AuthAPI:       handler.NewAuthHandler(authService, log),
		Borrows:       handler.NewBorrowHandler(borrowService, sink, log),
		Wishlists:     handler.NewWishlistHandler(wishlistService, log),
		Reviews:       handler.NewReviewHandler(reviewService, log),
		Books:         handler.NewBooksHandler(catalogClient, borrowService, log),
		RequestLogger: log,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func initNotifier(cfg *config.Config, redisClient *redis.Client, log *slog.Logger) notifier.Notifier {
	if cfg.Notification.Sink == config.SinkRedis && redisClient != nil {
		return notifier.NewRedisNotifier(redisClient, cfg.Notification.Queue)
	}
	return notifier.NewLogNotifier(log)
}
