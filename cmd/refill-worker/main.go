// The refill worker scans order history on an interval, records upcoming
// run-outs, and sends refill reminders. Run it alongside the API server when
// the postgres backend is in use.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/app/bootstrap"
	appconfig "github.com/arogyalabs/pharmacy-ai-platform/internal/config"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/notify"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/observability/metrics"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/refill"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting refill worker",
		"env", cfg.Env,
		"scan_interval", cfg.RefillScanInterval.String(),
		"days_threshold", cfg.RefillDaysThreshold,
	)

	if cfg.StoreBackend != "postgres" {
		logger.Error("refill worker requires the postgres backend; the API server runs the scanner in-process for the memory backend")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.BuildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	emailSender, err := bootstrap.BuildEmailSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build email sender", "error", err)
		os.Exit(1)
	}
	whatsappSender := bootstrap.BuildWhatsAppSender(cfg, logger)
	notifier := notify.NewService(emailSender, whatsappSender, stores.Patients, logger).
		WithRefillChannels(cfg.RefillNotifyChannels)

	predictor := refill.NewPredictor(stores.Orders).WithDaysThreshold(cfg.RefillDaysThreshold)
	scanner := refill.NewScanner(predictor, stores.Alerts, notifier, metrics.NewChatMetrics(nil), logger).
		WithInterval(cfg.RefillScanInterval).
		WithBackoff(cfg.RefillRetryBackoff)

	scanner.Run(ctx)
	logger.Info("refill worker stopped")
}
