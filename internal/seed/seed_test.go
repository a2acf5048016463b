package seed

import (
	"bytes"
	"context"
	"testing"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/adapters/storage/memory"
	"pet-adoption-insights/internal/domain/insights"
	"pet-adoption-insights/internal/domain/registry"
	"pet-adoption-insights/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions() Options {
	return Options{Shelters: 2, Users: 6, Pets: 12, Adoptions: 4, Likes: 8, Seed: 7}
}

func TestRun_PopulatesAllStores(t *testing.T) {
	ctx := context.Background()
	stores := storage.Memory()
	reg := registry.NewService(stores.Relational, stores.Documents, stores.Graph, nil)

	sum, err := Run(ctx, reg, smallOptions())
	require.NoError(t, err)

	assert.Len(t, sum.ShelterIDs, 2)
	assert.Len(t, sum.UserIDs, 6)
	assert.Len(t, sum.PetIDs, 12)
	assert.Equal(t, 4, sum.Adoptions)
	assert.Equal(t, 8, sum.Likes)
	assert.Zero(t, sum.PartialWrites)

	svc := insights.NewService(stores.Relational, stores.Documents, stores.Graph, nil)

	var adoptions, feedbacks int
	for _, id := range sum.UserIDs {
		rep, found, err := svc.UserEngagement(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		adoptions += rep.Adoptions
		feedbacks += rep.Feedbacks
	}
	assert.Equal(t, 4, adoptions)
	assert.Equal(t, 4, feedbacks)

	// todas las mascotas quedan disponibles con 2 tags
	fc, err := svc.ForecastDemand(ctx)
	require.NoError(t, err)
	var supply int
	for _, row := range fc.ByTag {
		supply += row.Supply
	}
	assert.Equal(t, 24, supply)
}

func TestRun_SameSeedSameDataset(t *testing.T) {
	ctx := context.Background()

	forecast := func() insights.Forecast {
		stores := storage.Memory()
		reg := registry.NewService(stores.Relational, stores.Documents, stores.Graph, nil)
		_, err := Run(ctx, reg, smallOptions())
		require.NoError(t, err)

		fc, err := insights.NewService(stores.Relational, stores.Documents, stores.Graph, nil).ForecastDemand(ctx)
		require.NoError(t, err)
		return fc
	}

	assert.Equal(t, forecast(), forecast())
}

func TestRun_RejectsInconsistentOptions(t *testing.T) {
	ctx := context.Background()
	stores := storage.Memory()
	reg := registry.NewService(stores.Relational, stores.Documents, stores.Graph, nil)

	_, err := Run(ctx, reg, Options{Pets: 3})
	assert.ErrorIs(t, err, registry.ErrInvalidInput)

	_, err = Run(ctx, reg, Options{Shelters: 1, Adoptions: 2})
	assert.ErrorIs(t, err, registry.ErrInvalidInput)
}

func TestDemo_SeedsOnlyInMemoryStores(t *testing.T) {
	ctx := context.Background()

	stores := storage.Memory()
	ran, err := Demo(ctx, stores, smallOptions())
	require.NoError(t, err)
	assert.True(t, ran)
	ids, err := stores.Relational.AvailablePetIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 12)
}

// sqlRelational se comporta como memoria pero cuenta como store real.
type sqlRelational struct{ *memory.Relational }

func TestDemo_SkipsWithRealStore(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	rel := memory.NewRelational()
	stores := storage.Memory()
	stores.Relational = sqlRelational{rel}

	opts := smallOptions()
	opts.Logger = logger.New(logger.Options{Level: logger.Warn, Output: &buf})

	ran, err := Demo(ctx, stores, opts)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Contains(t, buf.String(), "seed demo skipped")

	ids, err := rel.AvailablePetIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSample_DistinctElements(t *testing.T) {
	rng := NewSeededRNG(1)
	for i := 0; i < 20; i++ {
		got := sample(rng, tagPool, 2)
		require.Len(t, got, 2)
		assert.NotEqual(t, got[0], got[1])
	}
	assert.Len(t, sample(rng, []string{"a"}, 3), 1)
}

func TestPetName_WrapsPool(t *testing.T) {
	assert.Equal(t, "FluffyPaws", petName(0))
	assert.Equal(t, "FluffyPaws2", petName(len(petNamePool)))
}
