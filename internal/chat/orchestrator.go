package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/observability/metrics"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Message intents, in evaluation priority order.
const (
	IntentGreeting = "greeting"
	IntentHelp     = "help"
	IntentConfirm  = "confirm"
	IntentOrder    = "order"
)

// Notifier tells the patient (and pharmacy staff) about placed orders.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, patientID string, placed []orders.Order) error
}

// Orchestrator is the entry point for chat messages: it classifies intent,
// runs extraction and validation, and renders the localized reply plus card.
type Orchestrator struct {
	catalog   catalog.Repository
	validator *Validator
	pending   PendingOrderStore
	orders    *orders.Service
	notifier  Notifier
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
}

// NewOrchestrator wires the pipeline. notifier and metrics may be nil.
func NewOrchestrator(
	cat catalog.Repository,
	validator *Validator,
	pending PendingOrderStore,
	orderSvc *orders.Service,
	notifier Notifier,
	m *metrics.ChatMetrics,
	logger *logging.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		catalog:   cat,
		validator: validator,
		pending:   pending,
		orders:    orderSvc,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// ProcessMessage runs one chat turn. Business-rule outcomes (unknown
// patient, rejected items) come back as localized replies, never as errors;
// a non-nil error means a store failure already rendered as the localized
// "service unavailable" reply.
func (o *Orchestrator) ProcessMessage(ctx context.Context, patientID, message, lang string) (Response, error) {
	start := time.Now()
	t := templatesFor(lang)
	normalized := strings.ToLower(strings.TrimSpace(message))

	intent := classify(normalized)
	status := "ok"
	defer func() {
		o.metrics.ObserveMessage(intent, lang, status)
		o.metrics.ObserveLatency(intent, time.Since(start).Seconds())
	}()

	switch intent {
	case IntentGreeting:
		return Response{Reply: t.Greeting}, nil
	case IntentHelp:
		return Response{Reply: t.Help}, nil
	case IntentConfirm:
		resp, err := o.handleConfirm(ctx, patientID, t)
		if err != nil {
			status = "error"
		}
		return resp, err
	default:
		resp, err := o.handleOrder(ctx, patientID, normalized, t)
		if err != nil {
			status = "error"
		}
		return resp, err
	}
}

// classify picks the message intent. Greeting requires the full trimmed
// message to equal a greeting word (so "hello" greets even though the
// catalog could fuzzy-match it); help and confirm are substring checks.
func classify(normalized string) string {
	stripped := strings.TrimRight(normalized, "!.")
	for _, g := range greetingWords {
		if stripped == g {
			return IntentGreeting
		}
	}
	for _, kw := range helpKeywords {
		if strings.Contains(normalized, kw) {
			return IntentHelp
		}
	}
	for _, kw := range confirmKeywords {
		if strings.Contains(normalized, kw) {
			return IntentConfirm
		}
	}
	return IntentOrder
}

func (o *Orchestrator) handleOrder(ctx context.Context, patientID, normalized string, t templatePack) (Response, error) {
	products, err := o.catalog.List(ctx)
	if err != nil {
		o.logger.Error("catalog unavailable", "error", err)
		return Response{Reply: t.ServiceUnavailable}, fmt.Errorf("chat: list products: %w", err)
	}

	items := Extract(normalized, products)
	if len(items) == 0 {
		return Response{Reply: t.NotFound}, nil
	}

	validation, err := o.validator.Validate(ctx, patientID, items)
	if err != nil {
		o.logger.Error("validation failed", "error", err, "patient_id", patientID)
		return Response{Reply: t.ServiceUnavailable}, err
	}

	if !validation.OK {
		return Response{
			Reply: fmt.Sprintf(t.SafetyAlert, validation.Message),
			Card: &Card{
				Type:          CardSafetyAlert,
				Message:       validation.Message,
				RejectedItems: validation.Rejected,
			},
		}, nil
	}

	var totalCents int64
	for _, item := range validation.Approved {
		totalCents += item.LineTotalCents()
	}

	first := validation.Approved[0]
	var reply string
	if len(validation.Approved) == 1 {
		rxNote := ""
		if first.PrescriptionRequired {
			rxNote = t.RxOnFile
		}
		reply = fmt.Sprintf(t.FoundSingle, first.ProductName, rxNote, centsToRupees(first.LineTotalCents()))
	} else {
		names := make([]string, len(validation.Approved))
		for i, item := range validation.Approved {
			names[i] = fmt.Sprintf("%s (₹%.2f)", item.ProductName, centsToRupees(item.UnitPriceCents))
		}
		reply = fmt.Sprintf(t.FoundMulti, strings.Join(names, ", "), centsToRupees(totalCents))
	}

	if len(validation.Rejected) > 0 {
		names := make([]string, len(validation.Rejected))
		for i, r := range validation.Rejected {
			names[i] = r.ProductName
		}
		reply += fmt.Sprintf(t.RejectedNote, strings.Join(names, ", "), validation.Rejected[0].Reason)
	}

	if err := o.pending.Put(ctx, PendingOrder{PatientID: patientID, Items: validation.Approved}); err != nil {
		// The proposal card still goes out; only the confirm shortcut is lost.
		o.logger.Error("failed to store pending order", "error", err, "patient_id", patientID)
	}

	return Response{
		Reply: reply,
		Card: &Card{
			Type:        CardOrderConfirmation,
			ProductID:   first.ProductID,
			ProductName: first.ProductName,
			PriceCents:  first.UnitPriceCents,
			Quantity:    first.Quantity,
			TotalCents:  totalCents,
			Items:       validation.Approved,
		},
	}, nil
}

// handleConfirm commits the patient's pending proposal: each approved item
// becomes an order, decrementing stock atomically.
func (o *Orchestrator) handleConfirm(ctx context.Context, patientID string, t templatePack) (Response, error) {
	pending, err := o.pending.Pop(ctx, patientID)
	if err != nil {
		o.logger.Error("failed to read pending order", "error", err, "patient_id", patientID)
		return Response{Reply: t.ServiceUnavailable}, err
	}
	if pending == nil || len(pending.Items) == 0 {
		return Response{Reply: t.NothingToConfirm}, nil
	}

	var placed []orders.Order
	var failures []string
	for _, item := range pending.Items {
		order, err := o.orders.Place(ctx, patientID, item.ProductID, item.Quantity, "")
		if err != nil {
			o.logger.Warn("placement failed",
				"patient_id", patientID, "product_id", item.ProductID, "error", err)
			failures = append(failures, fmt.Sprintf("%s could not be ordered", item.ProductName))
			continue
		}
		placed = append(placed, *order)
		o.metrics.ObserveOrderPlaced()
	}

	if len(placed) == 0 {
		msg := "Order could not be placed: " + strings.Join(failures, "; ")
		return Response{
			Reply: fmt.Sprintf(t.SafetyAlert, msg),
			Card:  &Card{Type: CardSafetyAlert, Message: msg},
		}, nil
	}

	if o.notifier != nil {
		if err := o.notifier.NotifyOrderConfirmed(ctx, patientID, placed); err != nil {
			o.logger.Error("order notification failed", "error", err, "patient_id", patientID)
		}
	}

	var totalCents int64
	ids := make([]string, len(placed))
	for i, ord := range placed {
		totalCents += ord.TotalCents
		ids[i] = ord.ID
	}

	return Response{
		Reply: t.Confirmed,
		Card: &Card{
			Type:       CardOrderStatus,
			Status:     orders.StatusConfirmed,
			Message:    "Order placed successfully",
			TotalCents: totalCents,
			OrderIDs:   ids,
		},
	}, nil
}

func centsToRupees(cents int64) float64 {
	return float64(cents) / 100
}
