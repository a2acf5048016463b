package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/ports/documents"
)

// Documents guarda perfiles (uno por mascota) y feedback en memoria.
type Documents struct {
	mu sync.RWMutex

	profiles map[int64]catalog.PetProfile
	feedback []catalog.Feedback
}

var _ documents.Store = (*Documents)(nil)

func NewDocuments() *Documents {
	return &Documents{
		profiles: make(map[int64]catalog.PetProfile),
	}
}

func (d *Documents) FindProfilesByTags(ctx context.Context, tags []string) ([]catalog.PetProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}

	out := make([]catalog.PetProfile, 0)
	for _, p := range d.profiles {
		for _, t := range p.Tags {
			if _, ok := want[t]; ok {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PetID < out[j].PetID })
	return out, nil
}

func (d *Documents) ProfileByPet(ctx context.Context, petID int64) (catalog.PetProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.profiles[petID]
	if !ok {
		return catalog.PetProfile{}, documents.ErrNotFound
	}
	return p, nil
}

func (d *Documents) AverageRatingsByPet(ctx context.Context) (map[int64]float64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sum := map[int64]int{}
	n := map[int64]int{}
	for _, f := range d.feedback {
		sum[f.PetID] += f.Rating
		n[f.PetID]++
	}
	out := make(map[int64]float64, len(n))
	for id, c := range n {
		out[id] = float64(sum[id]) / float64(c)
	}
	return out, nil
}

func (d *Documents) SharedFeedbackCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	mine := map[int64]struct{}{}
	for _, f := range d.feedback {
		if f.UserID == userID {
			mine[f.PetID] = struct{}{}
		}
	}

	type pair struct{ user, pet int64 }
	counted := map[pair]struct{}{}
	out := map[int64]int{}
	for _, f := range d.feedback {
		if f.UserID == userID {
			continue
		}
		if _, ok := mine[f.PetID]; !ok {
			continue
		}
		k := pair{f.UserID, f.PetID}
		if _, dup := counted[k]; dup {
			continue
		}
		counted[k] = struct{}{}
		out[f.UserID]++
	}
	return out, nil
}

func (d *Documents) ReviewedPetIDs(ctx context.Context) ([]int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := map[int64]struct{}{}
	out := make([]int64, 0)
	for _, f := range d.feedback {
		if _, dup := seen[f.PetID]; dup {
			continue
		}
		seen[f.PetID] = struct{}{}
		out = append(out, f.PetID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (d *Documents) CountFeedbackByUser(ctx context.Context, userID int64) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n := 0
	for _, f := range d.feedback {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (d *Documents) AvailableCountsByTag(ctx context.Context, petIDs []int64) (map[string]int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := map[string]int{}
	seen := make(map[int64]struct{}, len(petIDs))
	for _, id := range petIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, ok := d.profiles[id]
		if !ok {
			continue
		}
		for _, t := range catalog.NormalizeTags(p.Tags) {
			out[t]++
		}
	}
	return out, nil
}

func (d *Documents) InsertProfile(ctx context.Context, p catalog.PetProfile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p.PetID <= 0 {
		return errors.New("profile pet_id required")
	}
	if _, exists := d.profiles[p.PetID]; exists {
		return errors.New("profile already exists")
	}
	d.profiles[p.PetID] = p
	return nil
}

func (d *Documents) InsertFeedback(ctx context.Context, f catalog.Feedback) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if f.ID == "" {
		return errors.New("feedback id required")
	}
	for _, existing := range d.feedback {
		if existing.ID == f.ID {
			return errors.New("feedback already exists")
		}
	}
	d.feedback = append(d.feedback, f)
	return nil
}
