package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-adoption-insights/internal/ports/graph"
)

type petNode struct {
	name  string
	breed string
}

type idSet map[int64]struct{}

func (s idSet) sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Graph modela nodos y relaciones en memoria. Las relaciones son idempotentes
// (equivalente a MERGE).
type Graph struct {
	mu sync.RWMutex

	users    map[int64]string
	shelters map[int64]string
	pets     map[int64]petNode

	likes     map[int64]idSet // user -> pets
	adopted   map[int64]idSet // user -> pets
	friends   map[int64]idSet // user -> users
	prefers   map[int64]map[string]struct{}
	hasTag    map[int64]map[string]struct{}
	locatedAt map[int64]int64
	similar   map[string]map[string]struct{}
}

var _ graph.Store = (*Graph)(nil)

func NewGraph() *Graph {
	return &Graph{
		users:     make(map[int64]string),
		shelters:  make(map[int64]string),
		pets:      make(map[int64]petNode),
		likes:     make(map[int64]idSet),
		adopted:   make(map[int64]idSet),
		friends:   make(map[int64]idSet),
		prefers:   make(map[int64]map[string]struct{}),
		hasTag:    make(map[int64]map[string]struct{}),
		locatedAt: make(map[int64]int64),
		similar:   make(map[string]map[string]struct{}),
	}
}

func (g *Graph) PreferredTags(ctx context.Context, userID int64) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.prefers[userID]))
	for t := range g.prefers[userID] {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func (g *Graph) InteractedPetIDs(ctx context.Context, userID int64) ([]int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	all := idSet{}
	for id := range g.likes[userID] {
		all[id] = struct{}{}
	}
	for id := range g.adopted[userID] {
		all[id] = struct{}{}
	}
	return all.sorted(), nil
}

func (g *Graph) AdoptedPetIDs(ctx context.Context, userID int64) ([]int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.adopted[userID].sorted(), nil
}

func (g *Graph) LikeCountsByPet(ctx context.Context) (map[int64]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := map[int64]int{}
	for _, pets := range g.likes {
		for id := range pets {
			out[id]++
		}
	}
	return out, nil
}

func (g *Graph) SharedLikeCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sharedCounts(g.likes, userID), nil
}

func (g *Graph) SharedPreferredTagCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	mine := g.prefers[userID]
	out := map[int64]int{}
	for other, tags := range g.prefers {
		if other == userID {
			continue
		}
		for t := range tags {
			if _, ok := mine[t]; ok {
				out[other]++
			}
		}
	}
	return out, nil
}

func (g *Graph) UnlikedPetIDs(ctx context.Context) ([]int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	liked := idSet{}
	for _, pets := range g.likes {
		for id := range pets {
			liked[id] = struct{}{}
		}
	}
	out := idSet{}
	for id := range g.pets {
		if _, ok := liked[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out.sorted(), nil
}

func (g *Graph) CountLikesByUser(ctx context.Context, userID int64) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.likes[userID]), nil
}

func (g *Graph) LikeCountsByBreed(ctx context.Context) (map[string]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := map[string]int{}
	for _, pets := range g.likes {
		for id := range pets {
			if b := g.pets[id].breed; b != "" {
				out[b]++
			}
		}
	}
	return out, nil
}

func (g *Graph) LikeCountsByTag(ctx context.Context) (map[string]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := map[string]int{}
	for _, pets := range g.likes {
		for id := range pets {
			for t := range g.hasTag[id] {
				out[t]++
			}
		}
	}
	return out, nil
}

func (g *Graph) UpsertUser(ctx context.Context, userID int64, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.users[userID] = name
	return nil
}

func (g *Graph) UpsertShelter(ctx context.Context, shelterID int64, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.shelters[shelterID] = name
	return nil
}

func (g *Graph) UpsertPet(ctx context.Context, petID int64, name, breed string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pets[petID] = petNode{name: name, breed: strings.TrimSpace(breed)}
	return nil
}

func (g *Graph) LinkPetToShelter(ctx context.Context, petID, shelterID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requirePet(petID); err != nil {
		return err
	}
	if _, ok := g.shelters[shelterID]; !ok {
		return fmt.Errorf("%w: shelter %d", graph.ErrNodeNotFound, shelterID)
	}
	g.locatedAt[petID] = shelterID
	return nil
}

func (g *Graph) TagPet(ctx context.Context, petID int64, tag string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requirePet(petID); err != nil {
		return err
	}
	addTag(g.hasTag, petID, tag)
	return nil
}

func (g *Graph) AddLike(ctx context.Context, userID, petID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireUserAndPet(userID, petID); err != nil {
		return err
	}
	addEdge(g.likes, userID, petID)
	return nil
}

func (g *Graph) AddAdoption(ctx context.Context, userID, petID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireUserAndPet(userID, petID); err != nil {
		return err
	}
	addEdge(g.adopted, userID, petID)
	return nil
}

func (g *Graph) PreferTag(ctx context.Context, userID int64, tag string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.users[userID]; !ok {
		return fmt.Errorf("%w: user %d", graph.ErrNodeNotFound, userID)
	}
	addTag(g.prefers, userID, tag)
	return nil
}

func (g *Graph) AddFriendship(ctx context.Context, userID, otherID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range []int64{userID, otherID} {
		if _, ok := g.users[id]; !ok {
			return fmt.Errorf("%w: user %d", graph.ErrNodeNotFound, id)
		}
	}
	addEdge(g.friends, userID, otherID)
	return nil
}

func (g *Graph) LinkSimilarBreeds(ctx context.Context, breed, other string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, pair := range [][2]string{{breed, other}, {other, breed}} {
		if g.similar[pair[0]] == nil {
			g.similar[pair[0]] = map[string]struct{}{}
		}
		g.similar[pair[0]][pair[1]] = struct{}{}
	}
	return nil
}

func (g *Graph) requirePet(petID int64) error {
	if _, ok := g.pets[petID]; !ok {
		return fmt.Errorf("%w: pet %d", graph.ErrNodeNotFound, petID)
	}
	return nil
}

func (g *Graph) requireUserAndPet(userID, petID int64) error {
	if _, ok := g.users[userID]; !ok {
		return fmt.Errorf("%w: user %d", graph.ErrNodeNotFound, userID)
	}
	return g.requirePet(petID)
}

func sharedCounts(edges map[int64]idSet, userID int64) map[int64]int {
	mine := edges[userID]
	out := map[int64]int{}
	for other, targets := range edges {
		if other == userID {
			continue
		}
		for id := range targets {
			if _, ok := mine[id]; ok {
				out[other]++
			}
		}
	}
	return out
}

func addEdge(edges map[int64]idSet, from, to int64) {
	if edges[from] == nil {
		edges[from] = idSet{}
	}
	edges[from][to] = struct{}{}
}

func addTag(edges map[int64]map[string]struct{}, from int64, tag string) {
	if edges[from] == nil {
		edges[from] = map[string]struct{}{}
	}
	edges[from][tag] = struct{}{}
}
