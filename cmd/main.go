package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_service/internal/auth"
	"todo_service/internal/config"
	"todo_service/internal/http_server/middleware/ratelimit"
	"todo_service/internal/http_server/router"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/rabbitmq"
	"todo_service/internal/storage/memory"
	"todo_service/internal/storage/mongo"
	"todo_service/internal/storage/redis"
	"todo_service/internal/todo"

	"github.com/go-chi/httprate"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type store interface {
	auth.UserSaver
	auth.UserProvider
	todo.TodoSaver
	todo.TodoProvider
	Close(ctx context.Context) error
}

func main() {
	cfg := config.MustLoad(config.FetchConfigPath())

	log := setupLogger(cfg.Env)

	log.Info("starting todo service", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()

		if err := st.Close(closeCtx); err != nil {
			log.Error("failed to close storage", sl.Err(err))
		}
	}()

	var publisher auth.Publisher
	if cfg.RabbitMQ.URL != "" {
		msgBroker, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
		if err != nil {
			log.Error("failed to connect rabbitmq", sl.Err(err))
			os.Exit(1)
		}
		defer msgBroker.Close()

		publisher = msgBroker
	}

	var counters rateLimit.CounterFactory
	if cfg.Redis.Addr != "" {
		redisRepo, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Error("failed to connect redis", sl.Err(err))
			os.Exit(1)
		}
		defer redisRepo.Close()

		counters = func(name string) httprate.LimitCounter { return redisRepo.LimitCounter(name) }
	}

	authService := auth.New(log, st, st, publisher, cfg.Tokens)
	todoService := todo.New(log, st, st)

	handler := router.New(log, router.Deps{
		Auth:    authService,
		Todos:   todoService,
		Limiter: rateLimit.New(counters),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", sl.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Todo service stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		return memory.New(), nil
	}

	repo, err := mongo.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return repo, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
