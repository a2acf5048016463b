package insights

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pet-adoption-insights/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func petIDs(pets []catalog.Pet) []int64 {
	out := make([]int64, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.ID)
	}
	return out
}

func userIDs(users []catalog.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// -------------------------
// RecommendPets
// -------------------------

func TestRecommendPets_RanksByTagOverlap(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.rel.addPet(11, "lab", catalog.StatusAvailable)
	f.rel.addPet(12, "lab", catalog.StatusAvailable)
	f.rel.addPet(13, "lab", catalog.StatusAvailable)
	f.graph.preferred[1] = []string{"calm", "playful"}
	f.docs.profiles = []catalog.PetProfile{
		{PetID: 11, Tags: []string{"calm"}},
		{PetID: 12, Tags: []string{"calm", "playful"}},
		{PetID: 13, Tags: []string{"energetic"}},
	}

	pets, found, err := f.svc.RecommendPets(context.Background(), 1, 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int64{12, 11}, petIDs(pets))
}

func TestRecommendPets_NoPreferredTags_ReturnsEmpty(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.rel.addPet(11, "lab", catalog.StatusAvailable)
	f.docs.profiles = []catalog.PetProfile{{PetID: 11, Tags: []string{"calm"}}}

	pets, found, err := f.svc.RecommendPets(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotNil(t, pets)
	assert.Empty(t, pets)
	assert.Zero(t, f.rel.byIDsCalls)
}

func TestRecommendPets_UnknownUser_NotFound(t *testing.T) {
	f := newFixture()

	pets, found, err := f.svc.RecommendPets(context.Background(), 99, 5)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, pets)
}

func TestRecommendPets_ExcludesAdoptedAndFiltersUnavailable(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.rel.addPet(11, "lab", catalog.StatusAvailable)
	f.rel.addPet(12, "lab", catalog.StatusAdopted)
	f.rel.addPet(13, "lab", catalog.StatusAvailable)
	f.graph.preferred[1] = []string{"calm"}
	f.graph.adopted[1] = []int64{13}
	f.graph.interacted[1] = []int64{13}
	f.docs.profiles = []catalog.PetProfile{
		{PetID: 11, Tags: []string{"calm"}},
		{PetID: 12, Tags: []string{"calm"}},
		{PetID: 13, Tags: []string{"calm"}},
	}

	pets, _, err := f.svc.RecommendPets(context.Background(), 1, 3)
	require.NoError(t, err)
	// 13 excluida por adopción; 12 cae en el filtro final de disponibilidad
	assert.Equal(t, []int64{11}, petIDs(pets))
}

func TestRecommendPets_TruncationCanReturnFewerThanLimit(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.rel.addPet(11, "lab", catalog.StatusOnHold)
	f.rel.addPet(12, "lab", catalog.StatusAvailable)
	f.rel.addPet(13, "lab", catalog.StatusAvailable)
	f.graph.preferred[1] = []string{"calm", "quiet"}
	f.docs.profiles = []catalog.PetProfile{
		{PetID: 11, Tags: []string{"calm", "quiet"}},
		{PetID: 12, Tags: []string{"calm", "quiet"}},
		{PetID: 13, Tags: []string{"calm"}},
	}

	pets, _, err := f.svc.RecommendPets(context.Background(), 1, 2)
	require.NoError(t, err)
	// el top-2 es [11,12]; 11 no está disponible y 13 no se recupera
	assert.Equal(t, []int64{12}, petIDs(pets))
}

func TestRecommendPets_LikedPetsRankAfterUnseenOnTie(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.rel.addPet(11, "lab", catalog.StatusAvailable)
	f.rel.addPet(12, "lab", catalog.StatusAvailable)
	f.graph.preferred[1] = []string{"calm"}
	f.graph.interacted[1] = []int64{11}
	f.docs.profiles = []catalog.PetProfile{
		{PetID: 11, Tags: []string{"calm"}},
		{PetID: 12, Tags: []string{"calm"}},
	}

	pets, _, err := f.svc.RecommendPets(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 11}, petIDs(pets))
}

func TestRecommendPets_NegativeLimit(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")

	_, _, err := f.svc.RecommendPets(context.Background(), 1, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommendPets_StoreFailurePropagates(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.graph.err = errBoom

	_, _, err := f.svc.RecommendPets(context.Background(), 1, 5)
	require.Error(t, err)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StoreGraph, se.Store)
	assert.ErrorIs(t, err, errBoom)
}

// -------------------------
// MostAdoptablePets
// -------------------------

func TestMostAdoptablePets_SortedByScoreWithTies(t *testing.T) {
	f := newFixture()
	for _, id := range []int64{1, 2, 3, 4} {
		f.rel.addPet(id, "lab", catalog.StatusAvailable)
	}
	f.rel.addPet(5, "lab", catalog.StatusAdopted)
	f.graph.likesByPet = map[int64]int{1: 2, 2: 1, 5: 10}
	f.docs.ratings = map[int64]float64{2: 1.0, 3: 4.5, 5: 5}

	pets, err := f.svc.MostAdoptablePets(context.Background(), 10)
	require.NoError(t, err)
	// 3 -> 4.5, 1 -> 2, 2 -> 2 (empate, id asc), 4 -> 0
	assert.Equal(t, []int64{3, 1, 2, 4}, petIDs(pets))
}

func TestMostAdoptablePets_LimitZero(t *testing.T) {
	f := newFixture()
	f.rel.addPet(1, "lab", catalog.StatusAvailable)

	pets, err := f.svc.MostAdoptablePets(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, pets)
	assert.Zero(t, f.rel.byIDsCalls)
}

func TestMostAdoptablePets_DocumentStoreDown(t *testing.T) {
	f := newFixture()
	f.rel.addPet(1, "lab", catalog.StatusAvailable)
	f.docs.err = errBoom

	_, err := f.svc.MostAdoptablePets(context.Background(), 5)
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StoreDocuments, se.Store)
}

// -------------------------
// UserConnections
// -------------------------

func TestUserConnections_MergesFourSources(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "A")
	f.rel.addUser(2, "B")
	f.rel.addUser(3, "C")
	f.graph.sharedLikes = map[int64]int{2: 2}
	f.graph.sharedTags = map[int64]int{2: 1, 3: 3}
	f.docs.shared = map[int64]int{3: 1}

	users, found, err := f.svc.UserConnections(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int64{3}, userIDs(users))

	users, _, err = f.svc.UserConnections(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, userIDs(users))
}

func TestUserConnections_IgnoresSelfAndDanglingUsers(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "A")
	f.rel.addUser(2, "B")
	f.graph.sharedLikes = map[int64]int{1: 9, 2: 1, 77: 5}

	users, _, err := f.svc.UserConnections(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, userIDs(users))
}

func TestUserConnections_NoSharedActivity(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "A")

	users, found, err := f.svc.UserConnections(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserConnections_UnknownUser(t *testing.T) {
	f := newFixture()

	_, found, err := f.svc.UserConnections(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.False(t, found)
}

// -------------------------
// LowEngagementPets
// -------------------------

func TestLowEngagementPets_SetAlgebra(t *testing.T) {
	f := newFixture()
	f.rel.addPet(1, "lab", catalog.StatusAvailable)
	f.rel.addPet(2, "lab", catalog.StatusAvailable)
	f.rel.addPet(3, "lab", catalog.StatusAdopted)
	f.rel.addPet(4, "lab", catalog.StatusAvailable)
	f.rel.addPet(5, "lab", catalog.StatusAvailable)
	f.graph.unliked = []int64{5, 4, 3, 2, 4}
	f.docs.reviewed = []int64{2}

	pets, err := f.svc.LowEngagementPets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, petIDs(pets))
}

func TestLowEngagementPets_EmptySkipsResolve(t *testing.T) {
	f := newFixture()
	f.rel.addPet(1, "lab", catalog.StatusAvailable)

	pets, err := f.svc.LowEngagementPets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pets)
	assert.Zero(t, f.rel.byIDsCalls)
}

// -------------------------
// UserEngagement
// -------------------------

func TestUserEngagement_AbsentVersusZero(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")

	_, found, err := f.svc.UserEngagement(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)

	rep, found, err := f.svc.UserEngagement(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, EngagementReport{UserID: 1, Name: "Ana"}, rep)
}

func TestUserEngagement_Counts(t *testing.T) {
	f := newFixture()
	f.rel.addUser(1, "Ana")
	f.graph.userLikes[1] = 3
	f.docs.feedbacks[1] = 2
	f.rel.adoptions[1] = 1

	rep, _, err := f.svc.UserEngagement(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Likes)
	assert.Equal(t, 2, rep.Feedbacks)
	assert.Equal(t, 1, rep.Adoptions)
}

func TestUserEngagement_RelationalDown(t *testing.T) {
	f := newFixture()
	f.rel.err = errBoom

	_, found, err := f.svc.UserEngagement(context.Background(), 1)
	assert.False(t, found)
	assert.True(t, IsStoreError(err))
}

// -------------------------
// ForecastDemand
// -------------------------

func TestForecastDemand_UnionAndUndefinedRatio(t *testing.T) {
	f := newFixture()
	f.rel.addPet(1, "lab", catalog.StatusAvailable)
	f.rel.addPet(2, "lab", catalog.StatusAvailable)
	f.rel.addPet(3, "poodle", catalog.StatusAdopted)
	f.graph.byBreed = map[string]int{"lab": 3, "poodle": 4}
	f.graph.byTag = map[string]int{"calm": 1}
	f.docs.profiles = []catalog.PetProfile{
		{PetID: 1, Tags: []string{"calm", "small"}},
		{PetID: 3, Tags: []string{"calm"}},
	}

	fc, err := f.svc.ForecastDemand(context.Background())
	require.NoError(t, err)

	lab := fc.ByBreed["lab"]
	assert.Equal(t, 3, lab.Demand)
	assert.Equal(t, 2, lab.Supply)
	assert.True(t, lab.Ratio.Defined)
	assert.InDelta(t, 1.5, lab.Ratio.Value, 1e-9)

	poodle, ok := fc.ByBreed["poodle"]
	require.True(t, ok)
	assert.Equal(t, 0, poodle.Supply)
	assert.False(t, poodle.Ratio.Defined)

	small, ok := fc.ByTag["small"]
	require.True(t, ok, "supply-only tags must appear")
	assert.Equal(t, 0, small.Demand)
	assert.Equal(t, 1, small.Supply)
	assert.True(t, small.Ratio.Defined)
	assert.Zero(t, small.Ratio.Value)

	assert.Equal(t, 1, fc.ByTag["calm"].Supply)
}

func TestForecastDemand_NoAvailablePetsSkipsTagSupply(t *testing.T) {
	f := newFixture()
	f.graph.byTag = map[string]int{"calm": 2}

	fc, err := f.svc.ForecastDemand(context.Background())
	require.NoError(t, err)
	assert.Zero(t, f.docs.byTagCalls)
	assert.False(t, fc.ByTag["calm"].Ratio.Defined)
	assert.Empty(t, fc.ByBreed)
}

func TestRatio_JSON(t *testing.T) {
	b, err := json.Marshal(DemandSupply{Demand: 2, Supply: 0, Ratio: NewRatio(2, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"demand":2,"supply":0,"ratio":null}`, string(b))

	b, err = json.Marshal(NewRatio(1, 4))
	require.NoError(t, err)
	assert.Equal(t, "0.25", string(b))

	var r Ratio
	require.NoError(t, json.Unmarshal([]byte("null"), &r))
	assert.False(t, r.Defined)
	require.NoError(t, json.Unmarshal([]byte("1.5"), &r))
	assert.Equal(t, Ratio{Value: 1.5, Defined: true}, r)
	assert.Equal(t, "1.50", r.String())
	assert.Equal(t, "undefined", Undefined().String())
}

func TestStoreError_Unwraps(t *testing.T) {
	err := error(&StoreError{Store: StoreGraph, Op: "likes", Err: errBoom})
	assert.True(t, errors.Is(err, errBoom))
	assert.Equal(t, "graph store: likes: connection refused", err.Error())
}
