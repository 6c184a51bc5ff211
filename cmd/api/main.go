package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/api/router"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/app/bootstrap"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/chat"
	appconfig "github.com/arogyalabs/pharmacy-ai-platform/internal/config"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/notify"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/observability/metrics"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/refill"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting pharmacy API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
	)

	ctx := context.Background()

	stores, err := bootstrap.BuildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	pendingStore := bootstrap.BuildPendingStore(redisClient, logger)

	emailSender, err := bootstrap.BuildEmailSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build email sender", "error", err)
		os.Exit(1)
	}
	whatsappSender := bootstrap.BuildWhatsAppSender(cfg, logger)
	notifier := notify.NewService(emailSender, whatsappSender, stores.Patients, logger).
		WithRefillChannels(cfg.RefillNotifyChannels)

	chatMetrics := metrics.NewChatMetrics(nil)

	orderService := orders.NewService(stores.Orders, stores.Catalog, logger)
	validator := chat.NewValidator(stores.Patients, stores.Catalog)
	orchestrator := chat.NewOrchestrator(
		stores.Catalog, validator, pendingStore, orderService, notifier, chatMetrics, logger)
	predictor := refill.NewPredictor(stores.Orders).WithDaysThreshold(cfg.RefillDaysThreshold)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chat.NewHandler(orchestrator, stores.ChatLogs, cfg.DefaultLanguage, logger),
		CatalogHandler:     catalog.NewHandler(stores.Catalog, logger),
		PatientHandler:     patient.NewHandler(stores.Patients, logger),
		OrdersHandler:      orders.NewHandler(stores.Orders, logger),
		RefillHandler:      refill.NewHandler(stores.Alerts, predictor, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// With the memory backend the order history lives only in this process,
	// so the refill scanner must run here too. With postgres the dedicated
	// refill-worker binary owns the scan.
	scanCtx, stopScan := context.WithCancel(ctx)
	defer stopScan()
	if cfg.StoreBackend == "memory" {
		scanner := refill.NewScanner(predictor, stores.Alerts, notifier, chatMetrics, logger).
			WithInterval(cfg.RefillScanInterval).
			WithBackoff(cfg.RefillRetryBackoff)
		go scanner.Run(scanCtx)
		logger.Info("in-process refill scanner started", "interval", cfg.RefillScanInterval.String())
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopScan()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
