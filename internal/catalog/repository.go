package catalog

import (
	"context"
	"strings"
	"sync"
)

// Repository defines the interface for catalog storage.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, query, category string) ([]Product, error)
	UpdateStock(ctx context.Context, id string, qty int) error
	// DecrementStock atomically subtracts qty from stock if at least qty
	// units remain. Returns false when stock was insufficient.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
}

// InMemoryRepository keeps the catalog in process memory.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	byID     map[string]int
}

// NewInMemoryRepository creates an in-memory catalog seeded with the given
// products. Order of the slice is preserved by List.
func NewInMemoryRepository(products []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(r.products, products)
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

// List returns all products.
func (r *InMemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Get returns the product with the given id.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := r.products[i]
	return &p, nil
}

// Search filters by case-insensitive substring on name, ingredient, or
// category, optionally restricted to an exact category.
func (r *InMemoryRepository) Search(ctx context.Context, query, category string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	cat := strings.ToLower(category)

	var out []Product
	for _, p := range r.products {
		if cat != "" && strings.ToLower(p.Category) != cat {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ActiveIngredient), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdateStock sets the absolute stock quantity (administrative restock).
func (r *InMemoryRepository) UpdateStock(ctx context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return ErrProductNotFound
	}
	r.products[i].Stock = qty
	return nil
}

// DecrementStock performs the check and the subtraction under one lock so
// two concurrent placements can never both succeed past available stock.
func (r *InMemoryRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return false, ErrProductNotFound
	}
	if r.products[i].Stock < qty {
		return false, nil
	}
	r.products[i].Stock -= qty
	return true, nil
}
