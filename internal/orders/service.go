package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Service builds and places orders.
type Service struct {
	repo    Repository
	catalog catalog.Repository
	logger  *logging.Logger
	now     func() time.Time
}

// NewService creates an order service.
func NewService(repo Repository, cat catalog.Repository, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, catalog: cat, logger: logger, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Place resolves the product, computes the total, and places the order.
// Frequency defaults to DefaultDosageFrequency when empty.
func (s *Service) Place(ctx context.Context, patientID, productID string, qty int, frequency string) (*Order, error) {
	if qty <= 0 {
		qty = 1
	}
	if frequency == "" {
		frequency = DefaultDosageFrequency
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("orders: place: %w", err)
	}

	order := &Order{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Quantity:        qty,
		TotalCents:      product.PriceCents * int64(qty),
		DosageFrequency: frequency,
		Status:          StatusConfirmed,
		PurchasedAt:     s.now().UTC(),
	}

	if err := s.repo.Place(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"patient_id", order.PatientID,
		"product_id", order.ProductID,
		"quantity", order.Quantity,
		"total_cents", order.TotalCents,
	)
	return order, nil
}
