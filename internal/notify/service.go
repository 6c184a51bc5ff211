package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/refill"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Service sends order confirmations and refill reminders to patients over
// whatever channels are configured. Missing channels are skipped, never
// fatal: a patient without an email address still gets the WhatsApp message.
type Service struct {
	email    EmailSender
	whatsapp WhatsAppSender
	patients patient.Repository
	logger   *logging.Logger

	refillEmail    bool
	refillWhatsApp bool
}

// NewService creates a notification service. email and whatsapp may be nil.
func NewService(email EmailSender, whatsapp WhatsAppSender, patients patient.Repository, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:          email,
		whatsapp:       whatsapp,
		patients:       patients,
		logger:         logger,
		refillEmail:    true,
		refillWhatsApp: true,
	}
}

// WithRefillChannels restricts refill reminders to the named channels
// ("email", "whatsapp", comma-separated). Order confirmations always go out
// on every configured channel. An empty list leaves both enabled.
func (s *Service) WithRefillChannels(channels string) *Service {
	channels = strings.TrimSpace(channels)
	if channels == "" {
		return s
	}
	s.refillEmail = false
	s.refillWhatsApp = false
	for _, ch := range strings.Split(channels, ",") {
		switch strings.ToLower(strings.TrimSpace(ch)) {
		case "email":
			s.refillEmail = true
		case "whatsapp":
			s.refillWhatsApp = true
		}
	}
	return s
}

// NotifyOrderConfirmed tells the patient their order went through.
func (s *Service) NotifyOrderConfirmed(ctx context.Context, patientID string, placed []orders.Order) error {
	if len(placed) == 0 {
		return nil
	}

	pat, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return fmt.Errorf("notify: order confirmation: %w", err)
	}

	var totalCents int64
	lines := make([]string, len(placed))
	for i, o := range placed {
		totalCents += o.TotalCents
		lines[i] = fmt.Sprintf("• %s × %d — ₹%.2f", o.ProductName, o.Quantity, o.Total())
	}
	total := fmt.Sprintf("₹%.2f", float64(totalCents)/100)

	var errs []error

	if s.email != nil && pat.Email != "" {
		msg := EmailMessage{
			To:      pat.Email,
			ToName:  pat.Name,
			Subject: "✅ Your pharmacy order is confirmed",
			Body: fmt.Sprintf(`Hi %s,

Your order has been confirmed:

%s

Total: %s
Estimated delivery: 30-60 minutes.

Stay healthy,
Arogya Pharmacy`, pat.Name, strings.Join(lines, "\n"), total),
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("notify: order confirmation email failed", "error", err, "patient_id", patientID)
			errs = append(errs, err)
		}
	}

	if s.whatsapp != nil && pat.Phone != "" {
		body := fmt.Sprintf("✅ Order confirmed!\n%s\nTotal: %s\nEstimated delivery: 30-60 minutes.",
			strings.Join(lines, "\n"), total)
		if err := s.whatsapp.SendWhatsApp(ctx, pat.Phone, body); err != nil {
			s.logger.Error("notify: order confirmation whatsapp failed", "error", err, "patient_id", patientID)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d notification(s) failed", len(errs))
	}
	return nil
}

// NotifyRefillDue reminds the patient their medicine is about to run out.
func (s *Service) NotifyRefillDue(ctx context.Context, alert refill.Alert) error {
	pat, err := s.patients.Get(ctx, alert.PatientID)
	if err != nil {
		return fmt.Errorf("notify: refill reminder: %w", err)
	}

	var when string
	switch alert.DaysRemaining {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", alert.DaysRemaining)
	}

	var errs []error

	if s.refillEmail && s.email != nil && pat.Email != "" {
		msg := EmailMessage{
			To:      pat.Email,
			ToName:  pat.Name,
			Subject: fmt.Sprintf("💊 Time to refill %s", alert.ProductName),
			Body: fmt.Sprintf(`Hi %s,

Based on your last purchase, your supply of %s runs out %s (around %s).

Reply to our chat with "refill %s" and we'll have it ready.

Stay healthy,
Arogya Pharmacy`, pat.Name, alert.ProductName, when, alert.RunOutDate.Format("January 2"), alert.ProductName),
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("notify: refill email failed", "error", err, "patient_id", alert.PatientID)
			errs = append(errs, err)
		}
	}

	if s.refillWhatsApp && s.whatsapp != nil && pat.Phone != "" {
		body := fmt.Sprintf("💊 Refill reminder: your %s runs out %s. Reply \"refill %s\" to reorder.",
			alert.ProductName, when, alert.ProductName)
		if err := s.whatsapp.SendWhatsApp(ctx, pat.Phone, body); err != nil {
			s.logger.Error("notify: refill whatsapp failed", "error", err, "patient_id", alert.PatientID)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d notification(s) failed", len(errs))
	}
	return nil
}

var _ refill.Notifier = (*Service)(nil)
