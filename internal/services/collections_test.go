package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/kartstats/internal/services"
	"github.com/HerbHall/kartstats/internal/testutil"
	"github.com/HerbHall/kartstats/pkg/models"
)

func TestCombinationRepository_RoundTrip(t *testing.T) {
	repo, err := services.NewSQLiteDocumentRepository(context.Background(), testutil.NewStore(t))
	require.NoError(t, err)
	combos := services.NewCombinationRepository(repo)
	ctx := context.Background()

	empty, err := combos.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	c := testutil.NewCharacter("Mario")
	v := testutil.NewVehicle("Kart")
	want := []models.Combination{{
		ID:            "Mario-Kart-1-abcdef12",
		Character:     c,
		Vehicle:       v,
		CombinedStats: c.Stats.Combine(v.Stats, 3),
		CreatedAt:     1,
	}}
	require.NoError(t, combos.Save(ctx, want))

	got, err := combos.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, combos.Save(ctx, nil))
	got, err = combos.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryRepository_IndependentOfCombinations(t *testing.T) {
	docs := services.NewMemoryDocumentRepository()
	history := services.NewHistoryRepository(docs)
	combos := services.NewCombinationRepository(docs)
	ctx := context.Background()

	items := []models.SearchHistoryItem{{Query: "mario", Timestamp: 10, ResultCount: 2}}
	require.NoError(t, history.Save(ctx, items))

	got, err := history.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	c, err := combos.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestCollection_CorruptDocument(t *testing.T) {
	docs := services.NewMemoryDocumentRepository()
	require.NoError(t, docs.Put(context.Background(), services.HistoryKey, []byte("{not json")))

	_, err := services.NewHistoryRepository(docs).Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, services.ErrNotFound))
}
