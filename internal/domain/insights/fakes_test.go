package insights

import (
	"context"
	"errors"
	"sort"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/ports/relational"
)

// -------------------------
// Fakes (respuestas fijas por store)
// -------------------------

var errBoom = errors.New("connection refused")

type fakeRelational struct {
	users     map[int64]catalog.User
	pets      map[int64]catalog.Pet
	shared    map[int64]int
	adoptions map[int64]int

	err        error
	byIDsCalls int
}

func newFakeRelational() *fakeRelational {
	return &fakeRelational{
		users:     map[int64]catalog.User{},
		pets:      map[int64]catalog.Pet{},
		shared:    map[int64]int{},
		adoptions: map[int64]int{},
	}
}

func (f *fakeRelational) addUser(id int64, name string) {
	f.users[id] = catalog.User{ID: id, Name: name, Role: catalog.RoleAdopter}
}

func (f *fakeRelational) addPet(id int64, breed string, status catalog.PetStatus) {
	f.pets[id] = catalog.Pet{ID: id, Name: "pet", Breed: breed, Type: "dog", Status: status}
}

func (f *fakeRelational) GetUser(ctx context.Context, id int64) (catalog.User, error) {
	if f.err != nil {
		return catalog.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return catalog.User{}, relational.ErrNotFound
	}
	return u, nil
}

func (f *fakeRelational) GetPet(ctx context.Context, id int64) (catalog.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return catalog.Pet{}, relational.ErrNotFound
	}
	return p, nil
}

func (f *fakeRelational) AvailablePetsByIDs(ctx context.Context, ids []int64) ([]catalog.Pet, error) {
	f.byIDsCalls++
	if f.err != nil {
		return nil, f.err
	}
	// orden inverso a propósito: el servicio debe reordenar
	out := make([]catalog.Pet, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		p, ok := f.pets[ids[i]]
		if ok && p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRelational) AvailablePetIDs(ctx context.Context) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]int64, 0)
	for id, p := range f.pets {
		if p.IsAvailable() {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out, nil
}

func (f *fakeRelational) AvailablePetCountsByBreed(ctx context.Context) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]int{}
	for _, p := range f.pets {
		if p.IsAvailable() {
			out[p.Breed]++
		}
	}
	return out, nil
}

func (f *fakeRelational) CountAdoptionsByUser(ctx context.Context, userID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.adoptions[userID], nil
}

func (f *fakeRelational) SharedAdoptionCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shared, nil
}

func (f *fakeRelational) CreateUser(ctx context.Context, u catalog.User) (catalog.User, error) {
	return u, errors.New("read-only fake")
}

func (f *fakeRelational) CreateShelter(ctx context.Context, s catalog.Shelter) (catalog.Shelter, error) {
	return s, errors.New("read-only fake")
}

func (f *fakeRelational) CreatePet(ctx context.Context, p catalog.Pet) (catalog.Pet, error) {
	return p, errors.New("read-only fake")
}

func (f *fakeRelational) CreateAdoption(ctx context.Context, a catalog.Adoption) (catalog.Adoption, error) {
	return a, errors.New("read-only fake")
}

type fakeDocuments struct {
	profiles  []catalog.PetProfile
	ratings   map[int64]float64
	shared    map[int64]int
	reviewed  []int64
	feedbacks map[int64]int

	err        error
	byTagCalls int
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{
		ratings:   map[int64]float64{},
		shared:    map[int64]int{},
		feedbacks: map[int64]int{},
	}
}

func (f *fakeDocuments) FindProfilesByTags(ctx context.Context, tags []string) ([]catalog.PetProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := toStringSet(tags)
	out := make([]catalog.PetProfile, 0)
	for _, p := range f.profiles {
		for _, t := range p.Tags {
			if _, ok := want[t]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeDocuments) ProfileByPet(ctx context.Context, petID int64) (catalog.PetProfile, error) {
	for _, p := range f.profiles {
		if p.PetID == petID {
			return p, nil
		}
	}
	return catalog.PetProfile{}, errors.New("not found")
}

func (f *fakeDocuments) AverageRatingsByPet(ctx context.Context) (map[int64]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ratings, nil
}

func (f *fakeDocuments) SharedFeedbackCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shared, nil
}

func (f *fakeDocuments) ReviewedPetIDs(ctx context.Context) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviewed, nil
}

func (f *fakeDocuments) CountFeedbackByUser(ctx context.Context, userID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.feedbacks[userID], nil
}

func (f *fakeDocuments) AvailableCountsByTag(ctx context.Context, petIDs []int64) (map[string]int, error) {
	f.byTagCalls++
	if f.err != nil {
		return nil, f.err
	}
	ids := toSet(petIDs)
	out := map[string]int{}
	for _, p := range f.profiles {
		if _, ok := ids[p.PetID]; !ok {
			continue
		}
		for _, t := range p.Tags {
			out[t]++
		}
	}
	return out, nil
}

func (f *fakeDocuments) InsertProfile(ctx context.Context, p catalog.PetProfile) error {
	return errors.New("read-only fake")
}

func (f *fakeDocuments) InsertFeedback(ctx context.Context, fb catalog.Feedback) error {
	return errors.New("read-only fake")
}

type fakeGraph struct {
	preferred   map[int64][]string
	interacted  map[int64][]int64
	adopted     map[int64][]int64
	likesByPet  map[int64]int
	sharedLikes map[int64]int
	sharedTags  map[int64]int
	unliked     []int64
	userLikes   map[int64]int
	byBreed     map[string]int
	byTag       map[string]int

	err error
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		preferred:   map[int64][]string{},
		interacted:  map[int64][]int64{},
		adopted:     map[int64][]int64{},
		likesByPet:  map[int64]int{},
		sharedLikes: map[int64]int{},
		sharedTags:  map[int64]int{},
		userLikes:   map[int64]int{},
		byBreed:     map[string]int{},
		byTag:       map[string]int{},
	}
}

func (f *fakeGraph) PreferredTags(ctx context.Context, userID int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.preferred[userID], nil
}

func (f *fakeGraph) InteractedPetIDs(ctx context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.interacted[userID], nil
}

func (f *fakeGraph) AdoptedPetIDs(ctx context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.adopted[userID], nil
}

func (f *fakeGraph) LikeCountsByPet(ctx context.Context) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.likesByPet, nil
}

func (f *fakeGraph) SharedLikeCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sharedLikes, nil
}

func (f *fakeGraph) SharedPreferredTagCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sharedTags, nil
}

func (f *fakeGraph) UnlikedPetIDs(ctx context.Context) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.unliked, nil
}

func (f *fakeGraph) CountLikesByUser(ctx context.Context, userID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.userLikes[userID], nil
}

func (f *fakeGraph) LikeCountsByBreed(ctx context.Context) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byBreed, nil
}

func (f *fakeGraph) LikeCountsByTag(ctx context.Context) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byTag, nil
}

func (f *fakeGraph) UpsertUser(ctx context.Context, userID int64, name string) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) UpsertShelter(ctx context.Context, shelterID int64, name string) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) UpsertPet(ctx context.Context, petID int64, name, breed string) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) LinkPetToShelter(ctx context.Context, petID, shelterID int64) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) TagPet(ctx context.Context, petID int64, tag string) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) AddLike(ctx context.Context, userID, petID int64) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) AddAdoption(ctx context.Context, userID, petID int64) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) PreferTag(ctx context.Context, userID int64, tag string) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) AddFriendship(ctx context.Context, userID, otherID int64) error {
	return errors.New("read-only fake")
}

func (f *fakeGraph) LinkSimilarBreeds(ctx context.Context, breed, other string) error {
	return errors.New("read-only fake")
}

func toStringSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, s := range items {
		out[s] = struct{}{}
	}
	return out
}

type fixture struct {
	rel   *fakeRelational
	docs  *fakeDocuments
	graph *fakeGraph
	svc   *Service
}

func newFixture() fixture {
	rel := newFakeRelational()
	docs := newFakeDocuments()
	g := newFakeGraph()
	return fixture{rel: rel, docs: docs, graph: g, svc: NewService(rel, docs, g, nil)}
}
