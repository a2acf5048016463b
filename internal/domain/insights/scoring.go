package insights

import (
	"sort"

	"pet-adoption-insights/internal/domain/catalog"
)

// scoredPet es un candidato de recomendación.
// Orden: Overlap desc, no vistos (Seen=false) antes que vistos, PetID asc.
type scoredPet struct {
	PetID   int64
	Overlap int
	Seen    bool // el usuario ya le dio LIKE
}

// adoptability: Score = Likes + Rating, sin normalizar.
type adoptability struct {
	PetID  int64
	Likes  int
	Rating float64
	Score  float64
}

// rankedUser es otro usuario con su score de similitud sumado.
type rankedUser struct {
	UserID int64
	Score  int
}

func toSet(ids []int64) map[int64]struct{} {
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// scoreCandidates calcula el overlap de tags por perfil. Excluye adoptados,
// perfiles sin overlap y perfiles repetidos (gana el primero).
func scoreCandidates(profiles []catalog.PetProfile, preferred []string, adopted, interacted map[int64]struct{}) []scoredPet {
	pref := make(map[string]struct{}, len(preferred))
	for _, t := range preferred {
		pref[t] = struct{}{}
	}

	seenPet := map[int64]struct{}{}
	out := make([]scoredPet, 0, len(profiles))
	for _, p := range profiles {
		if _, ok := adopted[p.PetID]; ok {
			continue
		}
		if _, dup := seenPet[p.PetID]; dup {
			continue
		}
		seenPet[p.PetID] = struct{}{}

		counted := map[string]struct{}{}
		overlap := 0
		for _, t := range p.Tags {
			if _, ok := pref[t]; !ok {
				continue
			}
			if _, ok := counted[t]; ok {
				continue
			}
			counted[t] = struct{}{}
			overlap++
		}
		if overlap == 0 {
			continue
		}

		_, liked := interacted[p.PetID]
		out = append(out, scoredPet{PetID: p.PetID, Overlap: overlap, Seen: liked})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Overlap != b.Overlap {
			return a.Overlap > b.Overlap
		}
		if a.Seen != b.Seen {
			return !a.Seen
		}
		return a.PetID < b.PetID
	})
	return out
}

func scoreAdoptability(available []int64, likes map[int64]int, ratings map[int64]float64) []adoptability {
	out := make([]adoptability, 0, len(available))
	seen := map[int64]struct{}{}
	for _, id := range available {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		// ausentes cuentan como 0 / 0.0
		l := likes[id]
		r := ratings[id]
		out = append(out, adoptability{PetID: id, Likes: l, Rating: r, Score: float64(l) + r})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PetID < out[j].PetID
	})
	return out
}

// mergeSharedCounts suma por usuario; un usuario ausente de un mapa aporta 0.
func mergeSharedCounts(maps ...map[int64]int) map[int64]int {
	out := map[int64]int{}
	for _, m := range maps {
		for id, n := range m {
			out[id] += n
		}
	}
	return out
}

func rankUsers(scores map[int64]int) []rankedUser {
	out := make([]rankedUser, 0, len(scores))
	for id, sc := range scores {
		out = append(out, rankedUser{UserID: id, Score: sc})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// lowEngagementIDs = (unliked ∩ available) − reviewed, ascendente y sin duplicados.
func lowEngagementIDs(unliked, available, reviewed []int64) []int64 {
	avail := toSet(available)
	rev := toSet(reviewed)

	seen := map[int64]struct{}{}
	out := make([]int64, 0)
	for _, id := range unliked {
		if _, ok := avail[id]; !ok {
			continue
		}
		if _, ok := rev[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// forecastRows emite una fila por cada clave en demand ∪ supply.
func forecastRows(demand, supply map[string]int) map[string]DemandSupply {
	out := make(map[string]DemandSupply, len(demand)+len(supply))
	for k := range demand {
		out[k] = DemandSupply{}
	}
	for k := range supply {
		out[k] = DemandSupply{}
	}
	for k := range out {
		d := demand[k]
		s := supply[k]
		out[k] = DemandSupply{Demand: d, Supply: s, Ratio: NewRatio(d, s)}
	}
	return out
}

func head[T any](items []T, n int, id func(T) int64) []int64 {
	if n > len(items) {
		n = len(items)
	}
	out := make([]int64, 0, n)
	for _, it := range items[:n] {
		out = append(out, id(it))
	}
	return out
}

// orderPets reordena según ids; los ids sin registro se descartan.
func orderPets(pets []catalog.Pet, ids []int64) []catalog.Pet {
	byID := make(map[int64]catalog.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}
	out := make([]catalog.Pet, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
		delete(byID, id)
	}
	return out
}
