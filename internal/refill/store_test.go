package refill

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertFixture(patientID, productID string, runOut time.Time) Alert {
	return Alert{
		PatientID:   patientID,
		ProductID:   productID,
		ProductName: "Metformin",
		OrderID:     "ORD1",
		RunOutDate:  runOut,
	}
}

func TestMemoryAlertStore_SaveDeduplicates(t *testing.T) {
	store := NewMemoryAlertStore()
	ctx := context.Background()
	runOut := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)

	created, err := store.Save(ctx, alertFixture("PAT001", "MED005", runOut))
	require.NoError(t, err)
	assert.True(t, created)

	// Same patient, product, and run-out date: a rescan, not a new alert.
	// The differing time-of-day must not defeat the dedup.
	created, err = store.Save(ctx, alertFixture("PAT001", "MED005", runOut.Add(3*time.Hour)))
	require.NoError(t, err)
	assert.False(t, created)

	alerts, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestMemoryAlertStore_NewRunOutDateIsNewAlert(t *testing.T) {
	store := NewMemoryAlertStore()
	ctx := context.Background()
	runOut := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	created, err := store.Save(ctx, alertFixture("PAT001", "MED005", runOut))
	require.NoError(t, err)
	assert.True(t, created)

	// A refill pushed the run-out date forward a month.
	created, err = store.Save(ctx, alertFixture("PAT001", "MED005", runOut.AddDate(0, 1, 0)))
	require.NoError(t, err)
	assert.True(t, created)

	alerts, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestMemoryAlertStore_ListSortedBySoonestRunOut(t *testing.T) {
	store := NewMemoryAlertStore()
	ctx := context.Background()
	base := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	_, err := store.Save(ctx, alertFixture("PAT001", "MED005", base.AddDate(0, 0, 5)))
	require.NoError(t, err)
	_, err = store.Save(ctx, alertFixture("PAT002", "MED001", base))
	require.NoError(t, err)

	alerts, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "PAT002", alerts[0].PatientID, "soonest run-out first")
}

func TestMemoryAlertStore_ListByPatient(t *testing.T) {
	store := NewMemoryAlertStore()
	ctx := context.Background()
	base := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	_, err := store.Save(ctx, alertFixture("PAT001", "MED005", base))
	require.NoError(t, err)
	_, err = store.Save(ctx, alertFixture("PAT002", "MED001", base))
	require.NoError(t, err)

	alerts, err := store.ListByPatient(ctx, "PAT001", 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "MED005", alerts[0].ProductID)

	alerts, err = store.ListByPatient(ctx, "PAT404", 10)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestMemoryAlertStore_AssignsIDAndTimestamp(t *testing.T) {
	store := NewMemoryAlertStore()

	_, err := store.Save(context.Background(), alertFixture("PAT001", "MED005", time.Now()))
	require.NoError(t, err)

	alerts, err := store.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.NotEmpty(t, alerts[0].ID)
	assert.False(t, alerts[0].CreatedAt.IsZero())
}
