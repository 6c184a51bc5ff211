package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
)

// PGPool is the subset of pgxpool.Pool the repository needs, including
// transactions for atomic placement. pgxmock satisfies it.
type PGPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores orders in Postgres.
type PostgresRepository struct {
	db PGPool
}

// NewPostgresRepository initializes a repo backed by a pgx pool (or mock).
func NewPostgresRepository(db PGPool) *PostgresRepository {
	if db == nil {
		panic("orders: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const orderColumns = `id, patient_id, product_id, product_name, quantity, total_cents, dosage_frequency, status, purchased_at`

// Place runs the conditional stock decrement and the order insert in one
// transaction. A failed decrement rolls back with ErrInsufficientStock.
func (r *PostgresRepository) Place(ctx context.Context, order *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("orders: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ok, err := catalog.DecrementStock(ctx, tx, order.ProductID, order.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientStock
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, patient_id, product_id, product_name, quantity, total_cents, dosage_frequency, status, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.PatientID, order.ProductID, order.ProductName,
		order.Quantity, order.TotalCents, order.DosageFrequency, order.Status, order.PurchasedAt)
	if err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("orders: commit: %w", err)
	}
	return nil
}

// ListByPatient returns the patient's orders, most recent first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE patient_id = $1 ORDER BY purchased_at DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("orders: list by patient: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// List returns all orders, most recent first.
func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY purchased_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// UpdateStatus moves an order to a new status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("orders: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.PatientID, &o.ProductID, &o.ProductName, &o.Quantity,
			&o.TotalCents, &o.DosageFrequency, &o.Status, &o.PurchasedAt); err != nil {
			return nil, fmt.Errorf("orders: scan: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders: rows: %w", err)
	}
	return out, nil
}

// IsInsufficientStock reports whether err is the stock-exhausted sentinel.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
