package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
)

// Repository defines the interface for order storage.
//
// Place must decrement product stock and record the order atomically with
// respect to other placements: two concurrent placements for the same
// product must never both succeed if their combined quantity exceeds stock.
type Repository interface {
	Place(ctx context.Context, order *Order) error
	ListByPatient(ctx context.Context, patientID string) ([]Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// InMemoryRepository keeps orders in process memory, decrementing stock
// through the catalog repository's conditional update.
type InMemoryRepository struct {
	mu      sync.RWMutex
	orders  []Order
	catalog catalog.Repository
}

// NewInMemoryRepository creates an in-memory order store backed by the given
// catalog for stock decrements.
func NewInMemoryRepository(cat catalog.Repository) *InMemoryRepository {
	return &InMemoryRepository{catalog: cat}
}

// Place decrements stock and appends the order. The decrement itself is the
// atomic check, so a failed decrement leaves no partial state behind.
func (r *InMemoryRepository) Place(ctx context.Context, order *Order) error {
	ok, err := r.catalog.DecrementStock(ctx, order.ProductID, order.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientStock
	}

	r.mu.Lock()
	r.orders = append(r.orders, *order)
	r.mu.Unlock()
	return nil
}

// ListByPatient returns the patient's orders, most recent first.
func (r *InMemoryRepository) ListByPatient(ctx context.Context, patientID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for _, o := range r.orders {
		if o.PatientID == patientID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchasedAt.After(out[j].PurchasedAt) })
	return out, nil
}

// List returns all orders, most recent first.
func (r *InMemoryRepository) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchasedAt.After(out[j].PurchasedAt) })
	return out, nil
}

// UpdateStatus moves an order to a new status.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}
