package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"jobverse/internal/api"
	"jobverse/internal/chat"
	"jobverse/internal/config"
	"jobverse/internal/publisher"
	"jobverse/internal/scheduler"
	"jobverse/internal/service"
	"jobverse/internal/source/rss"
	"jobverse/internal/storage/postgres"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("jobverse stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	backoff := func() retry.Backoff {
		return retry.WithMaxRetries(cfg.StartupRetries, retry.NewFibonacci(1*time.Second))
	}

	var db *sqlx.DB
	if err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
		if err != nil {
			logger.Warn("database not ready", "error", err)
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	}); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	logger.Info("connected to database")

	if err := postgres.Migrate(db, logger); err != nil {
		return err
	}

	var notifier service.Notifier
	if cfg.RabbitMQ.Enabled {
		var rabbitMQ *publisher.RabbitMQ
		if err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
			pub, err := publisher.NewRabbitMQ(publisher.Config{
				URL:        cfg.RabbitMQ.URL,
				Exchange:   cfg.RabbitMQ.Exchange,
				RoutingKey: cfg.RabbitMQ.RoutingKey,
				QueueName:  cfg.RabbitMQ.QueueName,
			}, logger)
			if err != nil {
				logger.Warn("rabbitmq not ready", "error", err)
				return retry.RetryableError(err)
			}
			rabbitMQ = pub
			return nil
		}); err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		defer rabbitMQ.Close()
		notifier = rabbitMQ
	}

	jobStore := postgres.NewJobStore(db)
	runLogStore := postgres.NewRunLogStore(db)
	txManager := postgres.NewTransactionManager(db)

	feed := rss.New(rss.Config{
		FeedURL:  cfg.Feed.URL,
		RelayURL: cfg.Feed.RelayURL,
		Source:   cfg.Feed.Source,
		Timeout:  cfg.Feed.Timeout,
	}, logger)

	workflow := service.NewWorkflowService(
		feed,
		jobStore,
		runLogStore,
		txManager,
		notifier,
		logger,
	)

	sched, err := scheduler.NewScheduler(workflow, scheduler.Config{
		Time:       cfg.Schedule.Time,
		Timezone:   cfg.Schedule.Timezone,
		RunTimeout: cfg.Schedule.RunTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	chatClient := chat.NewClient(chat.Config{
		APIKey:  cfg.Chat.APIKey,
		Model:   cfg.Chat.Model,
		BaseURL: cfg.Chat.BaseURL,
		Timeout: cfg.Chat.Timeout,
	}, logger)
	if cfg.Chat.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chat endpoint will return errors")
	}

	server := api.NewServer(api.Config{
		Port:        cfg.Server.Port,
		CORSOrigins: cfg.Server.CORSOrigins,
		RunTimeout:  cfg.Schedule.RunTimeout,
	}, workflow, runLogStore, jobStore, chatClient, logger)

	logger.Info("starting jobverse",
		"port", cfg.Server.Port,
		"feed", cfg.Feed.URL,
		"schedule", cfg.Schedule.Time,
		"notifications", cfg.RabbitMQ.Enabled,
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := sched.Start(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("run scheduler: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		sched.Stop()

		downCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(downCtx); err != nil {
			logger.Error("shutdown http server", "error", err)
		}
		return nil
	})

	return g.Wait()
}

func setupLogger(level string) *slog.Logger {
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

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
