package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"todo_service/internal/config"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/mailer"
	"todo_service/internal/rabbitmq"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoadSender(config.FetchConfigPath())
	log := setupLogger(cfg.Env)

	log.Info("Starting mail_sender", slog.String("env", cfg.Env))

	startConsumer(ctx, cfg, log)
}

func startConsumer(ctx context.Context, cfg *config.SenderConfig, log *slog.Logger) {
	r, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to init rabbitmq", sl.Err(err))
		return
	}
	defer r.Close()

	m := &mailer.Mailer{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := r.StartReading(ctx, func(ctx context.Context, body []byte) error {
			if err := m.Deliver(ctx, body); err != nil {
				log.Error("failed to send message", sl.Err(err))
				return err
			}

			log.Info("message sent successfully")

			return nil
		})
		if err != nil {
			log.Error("consumer stopped", sl.Err(err))
		}
	}()

	log.Info("consumer successfully started")

	select {
	case <-ctx.Done():
		log.Info("shutting down consumer...")
		<-done
	case <-done:
		log.Info("consumer finished the work")
	}

	log.Info("service gracefully stopped")
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
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
