package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"podmarket/cmd"
	"podmarket/config"
	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence/mysql"
	"podmarket/infrastructure/persistence/retry"
	"podmarket/infrastructure/queue"
	"podmarket/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Worker.Enabled {
		logger.Info("Outbox worker is disabled by config; exiting")
		return nil
	}

	db, err := cmd.NewMySQLConfig(cfg).Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	outboxRepo := mysql.NewOutboxRepository(db)
	statsRepo := mysql.NewShopStatsRepository(db)

	// 与 API 服务器完全相同的订阅表：worker 按它分发延迟处理器。
	bus := shared.NewEventBus(outboxRepo)
	if err := cmd.RegisterEventHandlers(bus, statsRepo); err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}

	var forwarder mysql.OutboxForwarder
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		forwarder, err = queue.NewRedisStreamForwarder(client, cfg.Redis.Stream)
		if err != nil {
			return fmt.Errorf("failed to create redis forwarder: %w", err)
		}
		logger.Info("Redis stream forwarding enabled",
			zap.String("addr", cfg.Redis.Addr),
			zap.String("stream", cfg.Redis.Stream))
	}

	worker, err := mysql.NewOutboxWorker(outboxRepo, bus, forwarder, mysql.WorkerConfig{
		PollInterval: cfg.Worker.PollInterval,
		BatchSize:    cfg.Worker.BatchSize,
		MaxRetries:   cfg.Worker.MaxRetries,
		StallTimeout: cfg.Worker.StallTimeout,
		Retry:        retry.FromAppConfig(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
	)

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("outbox worker exited with error: %w", err)
	}

	logger.Info("Outbox worker stopped")
	return logger.Sync()
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
