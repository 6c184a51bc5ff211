package refill

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AlertStore persists refill alerts. Save deduplicates on
// (patient, product, run-out date): re-scanning the same order history must
// not alert the patient twice, but a new purchase pushes the run-out date
// forward and legitimately produces a fresh alert.
type AlertStore interface {
	// Save stores the alert; created is false when an equivalent alert
	// already exists.
	Save(ctx context.Context, alert Alert) (created bool, err error)
	List(ctx context.Context, limit int) ([]Alert, error)
	ListByPatient(ctx context.Context, patientID string, limit int) ([]Alert, error)
}

// MemoryAlertStore keeps alerts in process memory.
type MemoryAlertStore struct {
	mu     sync.RWMutex
	alerts []Alert
	seen   map[string]struct{}
}

// NewMemoryAlertStore creates an empty in-memory alert store.
func NewMemoryAlertStore() *MemoryAlertStore {
	return &MemoryAlertStore{seen: make(map[string]struct{})}
}

func dedupKey(a Alert) string {
	return a.PatientID + "|" + a.ProductID + "|" + a.RunOutDate.UTC().Format("2006-01-02")
}

// Save stores the alert unless one with the same dedup key exists.
func (s *MemoryAlertStore) Save(ctx context.Context, alert Alert) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dedupKey(alert)
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	s.seen[key] = struct{}{}
	s.alerts = append(s.alerts, alert)
	return true, nil
}

// List returns alerts, soonest run-out first.
func (s *MemoryAlertStore) List(ctx context.Context, limit int) ([]Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortAndCap(append([]Alert(nil), s.alerts...), limit), nil
}

// ListByPatient returns the patient's alerts, soonest run-out first.
func (s *MemoryAlertStore) ListByPatient(ctx context.Context, patientID string, limit int) ([]Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Alert
	for _, a := range s.alerts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return sortAndCap(out, limit), nil
}

func sortAndCap(alerts []Alert, limit int) []Alert {
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].RunOutDate.Before(alerts[j].RunOutDate) })
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts
}

// PGQuerier is the pgx subset the Postgres alert store needs.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresAlertStore persists alerts in Postgres. Dedup rides on the unique
// index over (patient_id, product_id, run_out_date).
type PostgresAlertStore struct {
	db PGQuerier
}

// NewPostgresAlertStore creates a Postgres alert store.
func NewPostgresAlertStore(db PGQuerier) *PostgresAlertStore {
	if db == nil {
		panic("refill: pgx querier required")
	}
	return &PostgresAlertStore{db: db}
}

// Save inserts the alert, returning false when the unique index rejects it.
func (s *PostgresAlertStore) Save(ctx context.Context, alert Alert) (bool, error) {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	var inserted bool
	err := s.db.QueryRow(ctx, `
		INSERT INTO refill_alerts (id, patient_id, product_id, product_name, order_id, run_out_date, days_remaining, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (patient_id, product_id, run_out_date) DO NOTHING
		RETURNING true`,
		alert.ID, alert.PatientID, alert.ProductID, alert.ProductName,
		alert.OrderID, alert.RunOutDate.UTC(), alert.DaysRemaining, alert.CreatedAt,
	).Scan(&inserted)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("refill: save alert: %w", err)
	}
	return inserted, nil
}

// List returns alerts, soonest run-out first.
func (s *PostgresAlertStore) List(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.query(ctx, `
		SELECT id, patient_id, product_id, product_name, order_id, run_out_date, days_remaining, created_at
		FROM refill_alerts ORDER BY run_out_date ASC LIMIT $1`, limit)
}

// ListByPatient returns the patient's alerts, soonest run-out first.
func (s *PostgresAlertStore) ListByPatient(ctx context.Context, patientID string, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.query(ctx, `
		SELECT id, patient_id, product_id, product_name, order_id, run_out_date, days_remaining, created_at
		FROM refill_alerts WHERE patient_id = $1 ORDER BY run_out_date ASC LIMIT $2`, patientID, limit)
}

func (s *PostgresAlertStore) query(ctx context.Context, sql string, args ...any) ([]Alert, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("refill: list alerts: %w", err)
	}
	defer rows.Close()

	var out []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.PatientID, &a.ProductID, &a.ProductName,
			&a.OrderID, &a.RunOutDate, &a.DaysRemaining, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("refill: scan alert: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("refill: alert rows: %w", err)
	}
	return out, nil
}
