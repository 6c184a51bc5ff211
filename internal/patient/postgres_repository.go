package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGQuerier is the subset of pgxpool.Pool the repository needs.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores patients in Postgres.
type PostgresRepository struct {
	db PGQuerier
}

// NewPostgresRepository initializes a repo backed by a pgx pool (or mock).
func NewPostgresRepository(db PGQuerier) *PostgresRepository {
	if db == nil {
		panic("patient: pgx querier required")
	}
	return &PostgresRepository{db: db}
}

const patientColumns = `id, name, email, phone, preferred_language, allergies, prescription_on_file`

// Get returns the patient with the given id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Patient, error) {
	return r.getWhere(ctx, "id = $1", id)
}

// GetByEmail returns the patient with the given email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return r.getWhere(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *PostgresRepository) getWhere(ctx context.Context, where string, arg any) (*Patient, error) {
	row := r.db.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE `+where, arg)
	var p Patient
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.PreferredLanguage, &p.Allergies, &p.PrescriptionOnFile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("patient: get: %w", err)
	}
	return &p, nil
}

// List returns all patients ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]Patient, error) {
	rows, err := r.db.Query(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("patient: list: %w", err)
	}
	defer rows.Close()

	var out []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.PreferredLanguage, &p.Allergies, &p.PrescriptionOnFile); err != nil {
			return nil, fmt.Errorf("patient: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patient: rows: %w", err)
	}
	return out, nil
}

// UpdateProfile applies the non-nil fields of update and returns the
// resulting row.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Patient, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE patients SET
			name               = COALESCE($2, name),
			email              = COALESCE($3, email),
			phone              = COALESCE($4, phone),
			preferred_language = COALESCE($5, preferred_language),
			allergies          = COALESCE($6, allergies)
		WHERE id = $1
		RETURNING `+patientColumns,
		id, update.Name, update.Email, update.Phone, update.Language, update.Allergies)

	var p Patient
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.PreferredLanguage, &p.Allergies, &p.PrescriptionOnFile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("patient: update profile: %w", err)
	}
	return &p, nil
}

// SetPrescriptionOnFile marks the patient as having a verified prescription.
func (r *PostgresRepository) SetPrescriptionOnFile(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE patients SET prescription_on_file = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("patient: set prescription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}
