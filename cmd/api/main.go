package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paylane/payment-service/internal/command"
	"github.com/paylane/payment-service/internal/config"
	"github.com/paylane/payment-service/internal/events"
	"github.com/paylane/payment-service/internal/handler"
	"github.com/paylane/payment-service/internal/middleware"
	"github.com/paylane/payment-service/internal/query"
	redisclient "github.com/paylane/payment-service/internal/redis"
	"github.com/paylane/payment-service/internal/repository"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	store, cleanup, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to initialise store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	redis, err := redisclient.NewClient(cfg.RedisAddr, cfg.RedisPassword, 0)
	if err != nil {
		slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	publisher := events.NewPublisher(redis.Client)
	readRepo := repository.NewTransactionReadRepository(store, redis.Client)

	commandSvc := command.NewTransactionCommandService(store, readRepo, publisher)
	querySvc := query.NewTransactionQueryService(readRepo)

	transactionHandler := handler.NewTransactionHandler(commandSvc, querySvc)

	// Projector: keep the view cache in sync with lifecycle events.
	projector := query.NewViewProjector(store, readRepo)
	hostname, _ := os.Hostname()
	subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
		Group:    "view-projector",
		Consumer: hostname,
		Stream:   events.TransactionEventsStream,
		Handler:  projector.Handle,
	})
	subscriberCtx, stopSubscriber := context.WithCancel(context.Background())
	defer stopSubscriber()
	go func() {
		if err := subscriber.Start(subscriberCtx); err != nil && err != context.Canceled {
			slog.Error("view projector stopped", "error", err)
		}
	}()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewFixedWindowLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	v1 := router.Group("/v1/transactions", middleware.RateLimitMiddleware(limiter))
	{
		v1.POST("", transactionHandler.CreateTransaction)
		v1.GET("/:transactionId", transactionHandler.GetTransaction)
		v1.POST("/:transactionId/authorize", transactionHandler.AuthorizeTransaction)
		v1.POST("/:transactionId/capture", transactionHandler.CaptureTransaction)
		v1.POST("/:transactionId/refund", transactionHandler.RefundTransaction)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("payment service starting", "env", cfg.Env, "port", cfg.Port, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down")
	stopSubscriber()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server exited")
}

// newStore builds the TransactionStore selected by config and a cleanup
// function for its resources.
func newStore(cfg *config.Config) (repository.TransactionStore, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewPostgresStore(db), func() { db.Close() }, nil
	case "bolt":
		store, err := repository.NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return repository.NewMemoryStore(), func() {}, nil
	}
}
