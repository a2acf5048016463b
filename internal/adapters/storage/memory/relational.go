package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/ports/relational"
)

// Relational es el store relacional en memoria (dev/tests).
// Asigna ids secuenciales cuando el registro llega con ID 0.
type Relational struct {
	mu sync.RWMutex

	users     map[int64]catalog.User
	shelters  map[int64]catalog.Shelter
	pets      map[int64]catalog.Pet
	adoptions map[int64]catalog.Adoption

	seq map[string]int64
}

var _ relational.Store = (*Relational)(nil)

func NewRelational() *Relational {
	return &Relational{
		users:     make(map[int64]catalog.User),
		shelters:  make(map[int64]catalog.Shelter),
		pets:      make(map[int64]catalog.Pet),
		adoptions: make(map[int64]catalog.Adoption),
		seq:       make(map[string]int64),
	}
}

func (r *Relational) GetUser(ctx context.Context, id int64) (catalog.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return catalog.User{}, relational.ErrNotFound
	}
	return u, nil
}

func (r *Relational) GetPet(ctx context.Context, id int64) (catalog.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pets[id]
	if !ok {
		return catalog.Pet{}, relational.ErrNotFound
	}
	return p, nil
}

func (r *Relational) AvailablePetsByIDs(ctx context.Context, ids []int64) ([]catalog.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Pet, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p, ok := r.pets[id]
		if ok && p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Relational) AvailablePetIDs(ctx context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, 0)
	for id, p := range r.pets {
		if p.IsAvailable() {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *Relational) AvailablePetCountsByBreed(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// sin raza no cuenta como oferta, igual que en el grafo
	out := map[string]int{}
	for _, p := range r.pets {
		if p.IsAvailable() && p.Breed != "" {
			out[p.Breed]++
		}
	}
	return out, nil
}

func (r *Relational) CountAdoptionsByUser(ctx context.Context, userID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.adoptions {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *Relational) SharedAdoptionCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mine := map[int64]struct{}{}
	for _, a := range r.adoptions {
		if a.UserID == userID {
			mine[a.PetID] = struct{}{}
		}
	}

	type pair struct{ user, pet int64 }
	counted := map[pair]struct{}{}
	out := map[int64]int{}
	for _, a := range r.adoptions {
		if a.UserID == userID {
			continue
		}
		if _, ok := mine[a.PetID]; !ok {
			continue
		}
		k := pair{a.UserID, a.PetID}
		if _, dup := counted[k]; dup {
			continue
		}
		counted[k] = struct{}{}
		out[a.UserID]++
	}
	return out, nil
}

func (r *Relational) CreateUser(ctx context.Context, u catalog.User) (catalog.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.Email) != "" {
		for _, other := range r.users {
			if strings.EqualFold(other.Email, u.Email) {
				return catalog.User{}, errors.New("user email already exists")
			}
		}
	}
	id, err := r.assign("users", u.ID, func(id int64) bool { _, ok := r.users[id]; return ok })
	if err != nil {
		return catalog.User{}, err
	}
	u.ID = id
	r.users[id] = u
	return u, nil
}

func (r *Relational) CreateShelter(ctx context.Context, s catalog.Shelter) (catalog.Shelter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.assign("shelters", s.ID, func(id int64) bool { _, ok := r.shelters[id]; return ok })
	if err != nil {
		return catalog.Shelter{}, err
	}
	s.ID = id
	r.shelters[id] = s
	return s, nil
}

func (r *Relational) CreatePet(ctx context.Context, p catalog.Pet) (catalog.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ShelterID != 0 {
		if _, ok := r.shelters[p.ShelterID]; !ok {
			return catalog.Pet{}, errors.New("shelter does not exist")
		}
	}
	id, err := r.assign("pets", p.ID, func(id int64) bool { _, ok := r.pets[id]; return ok })
	if err != nil {
		return catalog.Pet{}, err
	}
	p.ID = id
	r.pets[id] = p
	return p, nil
}

func (r *Relational) CreateAdoption(ctx context.Context, a catalog.Adoption) (catalog.Adoption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[a.UserID]; !ok {
		return catalog.Adoption{}, errors.New("user does not exist")
	}
	if _, ok := r.pets[a.PetID]; !ok {
		return catalog.Adoption{}, errors.New("pet does not exist")
	}
	id, err := r.assign("adoptions", a.ID, func(id int64) bool { _, ok := r.adoptions[id]; return ok })
	if err != nil {
		return catalog.Adoption{}, err
	}
	a.ID = id
	r.adoptions[id] = a
	return a, nil
}

// assign devuelve el id a usar: el explícito si viene, o el siguiente de la secuencia.
// Se llama con el lock tomado.
func (r *Relational) assign(table string, explicit int64, exists func(int64) bool) (int64, error) {
	if explicit < 0 {
		return 0, errors.New("id must be positive")
	}
	if explicit > 0 {
		if exists(explicit) {
			return 0, errors.New(strings.TrimSuffix(table, "s") + " already exists")
		}
		if explicit > r.seq[table] {
			r.seq[table] = explicit
		}
		return explicit, nil
	}
	r.seq[table]++
	for exists(r.seq[table]) {
		r.seq[table]++
	}
	return r.seq[table], nil
}
