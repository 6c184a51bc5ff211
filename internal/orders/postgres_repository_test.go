package orders

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresPlaceCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	order := &Order{
		ID: "ord-1", PatientID: "PAT001", ProductID: "MED001", ProductName: "Dolo 650",
		Quantity: 2, TotalCents: 6400, DosageFrequency: DefaultDosageFrequency,
		Status: StatusConfirmed, PurchasedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET stock = stock -").
		WithArgs(order.Quantity, order.ProductID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.PatientID, order.ProductID, order.ProductName,
			order.Quantity, order.TotalCents, order.DosageFrequency, order.Status, order.PurchasedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.Place(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPlaceRollsBackOnInsufficientStock(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	order := &Order{ID: "ord-1", PatientID: "PAT001", ProductID: "MED001", Quantity: 99}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET stock = stock -").
		WithArgs(order.Quantity, order.ProductID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repo := NewPostgresRepository(mock)
	err = repo.Place(context.Background(), order)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders SET status =").
		WithArgs(StatusProcessing, "ord-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.UpdateStatus(context.Background(), "ord-1", StatusProcessing))

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "ord-1", "bogus"), ErrInvalidStatus)
}

func TestPostgresListByPatient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	purchased := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "patient_id", "product_id", "product_name", "quantity", "total_cents", "dosage_frequency", "status", "purchased_at"}).
		AddRow("ord-1", "PAT001", "MED001", "Dolo 650", 2, int64(6400), "as_needed", StatusConfirmed, purchased)
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE patient_id").
		WithArgs("PAT001").WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	list, err := repo.ListByPatient(context.Background(), "PAT001")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dolo 650", list[0].ProductName)
	assert.Equal(t, purchased, list[0].PurchasedAt)
}
