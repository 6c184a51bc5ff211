package refill

import (
	"context"
	"time"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/observability/metrics"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Notifier delivers a refill reminder to the patient.
type Notifier interface {
	NotifyRefillDue(ctx context.Context, alert Alert) error
}

// Scanner periodically runs the predictor, persists new alerts, and hands
// them to the notifier. A failed scan shortens the next wake-up to the retry
// backoff instead of waiting a full interval.
type Scanner struct {
	predictor *Predictor
	store     AlertStore
	notifier  Notifier
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
	interval  time.Duration
	backoff   time.Duration
}

// NewScanner creates a scanner. notifier and metrics may be nil.
func NewScanner(predictor *Predictor, store AlertStore, notifier Notifier, m *metrics.ChatMetrics, logger *logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scanner{
		predictor: predictor,
		store:     store,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
		interval:  6 * time.Hour,
		backoff:   30 * time.Second,
	}
}

// WithInterval overrides the scan interval.
func (s *Scanner) WithInterval(d time.Duration) *Scanner {
	if d > 0 {
		s.interval = d
	}
	return s
}

// WithBackoff overrides the retry delay after a failed scan.
func (s *Scanner) WithBackoff(d time.Duration) *Scanner {
	if d > 0 {
		s.backoff = d
	}
	return s
}

// Run scans immediately, then on every tick until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if err := s.Scan(ctx); err != nil {
				s.logger.Error("refill scan failed", "error", err)
				timer.Reset(s.backoff)
				continue
			}
			timer.Reset(s.interval)
		}
	}
}

// Scan runs one prediction pass. New alerts are stored and notified;
// duplicates from earlier passes are skipped silently. Notification failures
// are logged but don't fail the scan: the alert is stored and visible via
// the alerts endpoint regardless.
func (s *Scanner) Scan(ctx context.Context) error {
	alerts, err := s.predictor.Predict(ctx)
	if err != nil {
		return err
	}

	var created int
	for _, alert := range alerts {
		ok, err := s.store.Save(ctx, alert)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		created++
		s.metrics.ObserveRefillAlert()
		s.logger.Info("refill alert",
			"patient_id", alert.PatientID,
			"product_id", alert.ProductID,
			"run_out_date", alert.RunOutDate.Format("2006-01-02"),
			"days_remaining", alert.DaysRemaining,
		)
		if s.notifier != nil {
			if err := s.notifier.NotifyRefillDue(ctx, alert); err != nil {
				s.logger.Error("refill notification failed",
					"error", err, "patient_id", alert.PatientID, "product_id", alert.ProductID)
			}
		}
	}

	s.logger.Info("refill scan complete", "candidates", len(alerts), "new_alerts", created)
	return nil
}
