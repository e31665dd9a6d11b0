package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/config"
	delivery "golang-stock-notifier/internal/notifier/delivery/http"
	_ "golang-stock-notifier/internal/notifier/docs"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/internal/notifier/service"
	"golang-stock-notifier/pkg/database"
	"golang-stock-notifier/pkg/logger"
	"golang-stock-notifier/pkg/push"
	"golang-stock-notifier/pkg/redis"
	"golang-stock-notifier/pkg/telegram"
	"golang-stock-notifier/pkg/utils"

	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the notification service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewWithFile(cfg.Logger.Level, cfg.Logger.Encoding, logger.FileOptions{
		Path:       cfg.Logger.FilePath,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Notification Service",
		logger.Field("name", cfg.App.Name),
		logger.Field("alerts_storage", cfg.Storage.Alerts),
		logger.Field("devices_storage", cfg.Storage.Devices),
		logger.Field("transport", cfg.Push.Transport))

	// Initialize repositories
	alertStore, closeAlertStore, err := newAlertStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize alert store", logger.ErrorField(err))
	}
	defer closeAlertStore()

	deviceRegistry, closeDeviceRegistry, err := newDeviceRegistry(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize device registry", logger.ErrorField(err))
	}
	defer closeDeviceRegistry()

	marketData := repository.NewYahooFinanceRepository(cfg, appLogger)

	transport, err := newTransport(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize push transport", logger.ErrorField(err))
	}

	// Initialize services
	dispatcher := service.NewDispatcher(deviceRegistry, transport, cfg, appLogger)
	evaluator := service.NewEvaluator(alertStore, marketData, appLogger)
	alertSvc := service.NewAlertService(alertStore, evaluator, dispatcher, appLogger, cfg)
	deviceSvc := service.NewDeviceService(deviceRegistry, appLogger)
	notificationSvc := service.NewNotificationService(dispatcher)
	liveActivitySvc := service.NewLiveActivityService(marketData, appLogger)
	quoteSvc := service.NewQuoteService(marketData, appLogger)

	// Start price alert monitor
	if cfg.Monitor.Enabled {
		monitorSvc, err := service.NewMonitorService(alertStore, evaluator, dispatcher, appLogger, cfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize monitor", logger.ErrorField(err))
		}
		utils.GoSafe(appLogger, func() {
			monitorSvc.Start(ctx)
		})
	}

	// Initialize Echo server
	e := delivery.NewServer(appLogger)
	delivery.RegisterRoutes(e, delivery.Handlers{
		Device:       delivery.NewDeviceHandler(deviceSvc, appLogger),
		Alert:        delivery.NewAlertHandler(alertSvc, appLogger),
		Notification: delivery.NewNotificationHandler(notificationSvc, liveActivitySvc, appLogger),
		Quote:        delivery.NewQuoteHandler(quoteSvc, appLogger),
	})

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func newAlertStore(cfg *config.Config, appLogger *logger.Logger) (repository.AlertStore, func(), error) {
	switch cfg.Storage.Alerts {
	case config.StorageMemory, "":
		return repository.NewAlertStore(), func() {}, nil
	case config.StoragePostgres, config.StorageSQLite:
	default:
		return nil, nil, fmt.Errorf("unsupported alert storage %q", cfg.Storage.Alerts)
	}

	db, err := database.NewDB(database.Config{
		Driver:          cfg.Storage.Alerts,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		Path:            cfg.Database.Path,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, nil, err
	}

	// postgres schemas are owned by cmd/migrate
	if cfg.Storage.Alerts == config.StorageSQLite {
		if err := db.DB.AutoMigrate(&entity.PriceAlert{}, &entity.TradingAlert{}); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	closeFn := func() {
		if sqlDB, err := db.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				appLogger.Error("Failed to close database", logger.ErrorField(err))
			}
		}
	}
	return repository.NewSQLAlertStore(db.DB), closeFn, nil
}

func newDeviceRegistry(cfg *config.Config, appLogger *logger.Logger) (repository.DeviceRegistry, func(), error) {
	switch cfg.Storage.Devices {
	case config.StorageMemory, "":
		return repository.NewDeviceRegistry(), func() {}, nil
	case config.StorageRedis:
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisDeviceRegistry(redisClient.Client, cfg.Redis.KeyPrefix, appLogger), func() { _ = redisClient.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported device storage %q", cfg.Storage.Devices)
	}
}

func newTransport(cfg *config.Config, appLogger *logger.Logger) (push.Transport, error) {
	var transport push.Transport
	switch cfg.Push.Transport {
	case config.TransportLog, "":
		transport = push.NewLogTransport(appLogger)
	case config.TransportTelegram:
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, 0)
		if err != nil {
			return nil, err
		}
		transport = push.NewTelegramTransport(notifier)
	case config.TransportWebhook:
		if cfg.Push.WebhookURL == "" {
			return nil, fmt.Errorf("push.webhook_url is required for the webhook transport")
		}
		transport = push.NewWebhookTransport(cfg.Push.WebhookURL, cfg.Push.WebhookTimeout)
	default:
		return nil, fmt.Errorf("unsupported push transport %q", cfg.Push.Transport)
	}
	return push.NewRateLimited(transport, cfg.Push.MaxRequestPerMinute), nil
}

// @title Stock Notifier API
// @version 1.0
// @description Price alerts, trading alerts and push notification dispatch.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "notification-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-notifier.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing notification-service CLI: %s\n", err)
		os.Exit(1)
	}
}
