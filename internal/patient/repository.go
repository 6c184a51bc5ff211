package patient

import (
	"context"
	"strings"
	"sync"
)

// Repository defines the interface for patient storage.
type Repository interface {
	Get(ctx context.Context, id string) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	List(ctx context.Context) ([]Patient, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Patient, error)
	SetPrescriptionOnFile(ctx context.Context, id string) error
}

// InMemoryRepository keeps patients in process memory.
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients map[string]*Patient
	order    []string
}

// NewInMemoryRepository creates an in-memory repository seeded with the
// given patients.
func NewInMemoryRepository(patients []Patient) *InMemoryRepository {
	r := &InMemoryRepository{patients: make(map[string]*Patient, len(patients))}
	for i := range patients {
		p := patients[i]
		r.patients[p.ID] = &p
		r.order = append(r.order, p.ID)
	}
	return r
}

// Get returns the patient with the given id.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

// GetByEmail returns the patient with the given email (case-insensitive).
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrPatientNotFound
}

// List returns all patients in insertion order.
func (r *InMemoryRepository) List(ctx context.Context) ([]Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Patient, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.patients[id])
	}
	return out, nil
}

// UpdateProfile applies the non-nil fields of update.
func (r *InMemoryRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Email != nil {
		p.Email = *update.Email
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	if update.Language != nil {
		p.PreferredLanguage = *update.Language
	}
	if update.Allergies != nil {
		p.Allergies = append([]string(nil), (*update.Allergies)...)
	}
	cp := *p
	return &cp, nil
}

// SetPrescriptionOnFile marks the patient as having a verified prescription.
func (r *InMemoryRepository) SetPrescriptionOnFile(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return ErrPatientNotFound
	}
	p.PrescriptionOnFile = true
	return nil
}
