package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pk-dosing-form/internal/domain/calculations"
	"pk-dosing-form/internal/domain/pk"
)

func TestRowRoundTripKeepsOptionalValues(t *testing.T) {
	c := calculations.Calculation{
		ID:        uuid.NewString(),
		CreatedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Input:     pk.DefaultInput(),
		Result:    pk.Calculate(pk.Input{Points: "abc"}),
	}

	row, err := toRow(c)
	require.NoError(t, err)

	got, err := fromRow(row)
	require.NoError(t, err)
	assert.Equal(t, c.Input, got.Input)
	assert.Nil(t, got.Result.Rates.Selected)
	assert.Nil(t, got.Result.HalfLife)
	assert.Empty(t, got.Result.Samples)
}

// Requiere una base real: PK_TEST_DB_DSN=postgres://... go test ./...
func TestCalculationsRepo_Postgres(t *testing.T) {
	dsn := os.Getenv("PK_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("PK_TEST_DB_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	defer db.Close()

	repo := NewCalculationsRepo(db)
	svc := calculations.NewService(repo)
	ctx := context.Background()

	c, err := svc.Create(ctx, pk.DefaultInput())
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	require.NotNil(t, got.Result.Rates.Selected)
	assert.InDelta(t, *c.Result.Rates.Selected, *got.Result.Rates.Selected, 1e-12)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, calculations.ErrNotFound)

	items, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
