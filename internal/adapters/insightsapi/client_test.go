package insightsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/domain/insights"
	"pet-adoption-insights/internal/domain/registry"
	"pet-adoption-insights/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*Client, *registry.Service) {
	t.Helper()

	stores := storage.Memory()
	ts := httptest.NewServer(router.NewRouter(router.Options{Stores: stores}))
	t.Cleanup(ts.Close)

	c, err := New(ts.URL, time.Second)
	require.NoError(t, err)
	return c, registry.NewService(stores.Relational, stores.Documents, stores.Graph, nil)
}

func TestClient_AgainstRouter(t *testing.T) {
	c, reg := newServer(t)
	ctx := context.Background()

	u, err := reg.CreateUser(ctx, registry.CreateUserInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	p, err := reg.CreatePet(ctx, registry.CreatePetInput{
		Name: "Luna", Type: "dog", Breed: "Beagle",
		Profile: &registry.ProfileInput{Tags: []string{"calm"}},
	})
	require.NoError(t, err)
	_, err = reg.PreferTags(ctx, u.ID, registry.PreferenceInput{Tags: []string{"calm"}})
	require.NoError(t, err)

	pets, found, err := c.RecommendPets(ctx, u.ID, 5)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, pets, 1)
	assert.Equal(t, p.ID, pets[0].ID)

	rep, found, err := c.UserEngagement(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Ana", rep.Name)

	low, err := c.LowEngagementPets(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 1)

	fc, err := c.ForecastDemand(ctx)
	require.NoError(t, err)
	row, ok := fc.ByBreed["Beagle"]
	require.True(t, ok)
	assert.Equal(t, 1, row.Supply)
	assert.Equal(t, 0, row.Demand)
}

func TestClient_NotFoundAndInvalid(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	_, found, err := c.UserConnections(ctx, 404, 5)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = c.MostAdoptablePets(ctx, -1)
	assert.ErrorIs(t, err, insights.ErrInvalidInput)
}

func TestClient_ServiceUnavailableIsStoreError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	require.NoError(t, err)

	_, err = c.ForecastDemand(context.Background())
	require.Error(t, err)

	var se *insights.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StoreAPI, se.Store)
}
