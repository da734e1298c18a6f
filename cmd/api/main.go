package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"order-manager/internal/core/cache"
	"order-manager/internal/core/config"
	"order-manager/internal/core/database"
	"order-manager/internal/core/httpclient"
	"order-manager/internal/core/logger"
	"order-manager/internal/core/server"
	inventory "order-manager/internal/features/inventory/adapters"
	"order-manager/internal/features/loyalty"
	"order-manager/internal/features/notifications"
	orderadapter "order-manager/internal/features/orders/adapters"
	orderhandler "order-manager/internal/features/orders/handler"
	"order-manager/internal/features/orders/ports"
	orderservice "order-manager/internal/features/orders/service"
	paymenthandler "order-manager/internal/features/payments/handler"
	paymentservice "order-manager/internal/features/payments/service"
	"order-manager/internal/features/payments/strategies"
	reporthandler "order-manager/internal/features/reports/handler"
	reportservice "order-manager/internal/features/reports/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title Order Manager API
// @version 1.0
// @description Order intake, pricing, payments, notifications and reports for the store.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("stock_source", cfg.Stock.Source),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		l.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	srv := server.New(cfg)
	srv.AddHealthCheck("database", db.Health)

	// Stock source
	var stock ports.StockChecker
	switch cfg.Stock.Source {
	case "redis":
		redisCache, err := cache.NewRedisAdapter(cfg.Stock.RedisURL)
		if err != nil {
			l.Fatal("Failed to create redis client", zap.Error(err))
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			l.Fatal("Redis Health Check Failed", zap.Error(err))
		}

		redisStock := inventory.NewRedisStock(redisCache)
		if err := redisStock.Seed(ctx, inventory.DefaultStock); err != nil {
			l.Fatal("Failed to seed stock", zap.Error(err))
		}
		stock = redisStock

		srv.AddHealthCheck("stock", func(ctx context.Context) map[string]string {
			if err := redisCache.Ping(ctx); err != nil {
				return map[string]string{"status": "down", "error": err.Error()}
			}
			return map[string]string{"status": "up", "source": "redis"}
		})
	default:
		stock = inventory.NewMemoryStock(nil)
	}
	l.Info("Stock source ready", zap.String("source", stock.Source()))

	// Notification channels
	notifyLog := logger.Named("notifications")
	channels := []notifications.Channel{
		notifications.NewEmailChannel(notifyLog),
		notifications.NewSMSChannel(notifyLog),
	}

	if cfg.Notifications.WhatsAppEnabled {
		channels = append(channels, notifications.NewWhatsAppChannel(notifyLog))
	}

	if cfg.Notifications.PushWebhookURL != "" {
		client, err := httpclient.NewProxiedClient(5*time.Second, cfg.Notifications.HTTPProxyURL)
		if err != nil {
			l.Fatal("Invalid HTTP proxy", zap.Error(err))
		}
		channels = append(channels, notifications.NewPushChannel(client, cfg.Notifications.PushWebhookURL))
	}

	if brokers := cfg.Notifications.Brokers(); len(brokers) > 0 {
		kafkaClient, err := notifications.NewKafkaClient(brokers)
		if err != nil {
			l.Fatal("Failed to create kafka client", zap.Error(err))
		}
		defer kafkaClient.Close()
		channels = append(channels, notifications.NewKafkaChannel(kafkaClient, cfg.Notifications.KafkaTopic))
	}

	dispatcher := notifications.NewDispatcher(notifyLog, channels...)

	// Order Service & Handler
	repo := orderadapter.NewSQLRepository(db)
	orderSvc := orderservice.NewOrderService(repo, stock, dispatcher,
		loyalty.NewProgram(logger.Named("loyalty")),
		orderservice.WithLogger(logger.Named("orders")),
	)
	orderhandler.NewOrderHandler(orderSvc).Register(srv.App)

	// Payment Service & Handler
	paymentLog := logger.Named("payments")
	paymentSvc := paymentservice.NewPaymentService(orderSvc, strategies.Default(paymentLog), paymentLog)
	paymenthandler.NewPaymentHandler(paymentSvc).Register(srv.App)

	// Report Service & Handler
	reporthandler.NewReportHandler(reportservice.NewReportService(repo)).Register(srv.App)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error("Server stopped with error", zap.Error(err))
	}
}
