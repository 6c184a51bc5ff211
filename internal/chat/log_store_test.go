package chat

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLogStore_AppendAndList(t *testing.T) {
	store := NewMemoryLogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, LogEntry{PatientID: "PAT001", Message: "hello", Reply: "hi"}))
	require.NoError(t, store.Append(ctx, LogEntry{PatientID: "PAT001", Message: "i need dolo", Reply: "found it",
		Card: &Card{Type: CardOrderConfirmation, ProductID: "MED001"}}))
	require.NoError(t, store.Append(ctx, LogEntry{PatientID: "PAT002", Message: "help", Reply: "menu"}))

	entries, err := store.ListByPatient(ctx, "PAT001", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "i need dolo", entries[1].Message)
	require.NotNil(t, entries[1].Card)
	assert.Equal(t, "MED001", entries[1].Card.ProductID)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestMemoryLogStore_LimitKeepsMostRecent(t *testing.T) {
	store := NewMemoryLogStore()
	ctx := context.Background()

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(ctx, LogEntry{PatientID: "PAT001", Message: msg}))
	}

	entries, err := store.ListByPatient(ctx, "PAT001", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].Message)
	assert.Equal(t, "three", entries[1].Message)
}

func TestMemoryLogStore_UnknownPatient(t *testing.T) {
	store := NewMemoryLogStore()

	entries, err := store.ListByPatient(context.Background(), "PAT404", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPostgresLogStore_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresLogStore(mock)

	mock.ExpectExec("INSERT INTO chat_logs").
		WithArgs(pgxmock.AnyArg(), "PAT001", "hello", "hi there", pgxmock.AnyArg(), "en", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Append(context.Background(), LogEntry{
		PatientID: "PAT001",
		Message:   "hello",
		Reply:     "hi there",
		Language:  "en",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
