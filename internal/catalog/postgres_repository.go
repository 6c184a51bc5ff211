package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGQuerier is the subset of pgxpool.Pool the repository needs. pgx
// transactions and pgxmock satisfy it too, so the order service can run the
// stock decrement inside its own transaction and tests can substitute a mock.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores the catalog in Postgres.
type PostgresRepository struct {
	db PGQuerier
}

// NewPostgresRepository initializes a repo backed by a pgx pool (or mock).
func NewPostgresRepository(db PGQuerier) *PostgresRepository {
	if db == nil {
		panic("catalog: pgx querier required")
	}
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, active_ingredient, category, price_cents, stock, prescription_required`

// List returns all products ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Get returns a single product by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.ActiveIngredient, &p.Category, &p.PriceCents, &p.Stock, &p.PrescriptionRequired); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog: get: %w", err)
	}
	return &p, nil
}

// Search filters by substring match on name/ingredient/category.
func (r *PostgresRepository) Search(ctx context.Context, query, category string) ([]Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%'
			OR active_ingredient ILIKE '%' || $1 || '%'
			OR category ILIKE '%' || $1 || '%')
		AND ($2 = '' OR category ILIKE $2)
		ORDER BY id`
	rows, err := r.db.Query(ctx, sql, query, category)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// UpdateStock sets the absolute stock quantity.
func (r *PostgresRepository) UpdateStock(ctx context.Context, id string, qty int) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET stock = $1 WHERE id = $2`, qty, id)
	if err != nil {
		return fmt.Errorf("catalog: update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock is a single conditional update: the WHERE clause guarantees
// two concurrent placements never both succeed past available stock.
func (r *PostgresRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	return DecrementStock(ctx, r.db, id, qty)
}

// DecrementStock runs the conditional decrement on any querier, so the order
// service can execute it inside its own transaction.
func DecrementStock(ctx context.Context, db PGQuerier, id string, qty int) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`, qty, id)
	if err != nil {
		return false, fmt.Errorf("catalog: decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ActiveIngredient, &p.Category, &p.PriceCents, &p.Stock, &p.PrescriptionRequired); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: rows: %w", err)
	}
	return out, nil
}
