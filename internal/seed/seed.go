// Package seed genera un dataset sintético a través de la capa de registro,
// de modo que los tres stores quedan poblados de forma consistente.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/domain/registry"
	"pet-adoption-insights/internal/platform/logger"
)

type Options struct {
	Shelters  int
	Users     int
	Pets      int
	Adoptions int
	Likes     int

	// Seed 0 usa la hora actual.
	Seed int64

	Logger logger.Logger
}

// DefaultOptions replica el volumen del dataset de demo.
func DefaultOptions() Options {
	return Options{
		Shelters:  5,
		Users:     50,
		Pets:      100,
		Adoptions: 35,
		Likes:     60,
		Seed:      42,
	}
}

// Summary cuenta lo creado. Los ids quedan en orden de creación.
type Summary struct {
	ShelterIDs    []int64
	UserIDs       []int64
	PetIDs        []int64
	Adoptions     int
	Likes         int
	PartialWrites int
}

// Writer es el subconjunto de registry.Service que usa el seed.
type Writer interface {
	CreateUser(ctx context.Context, in registry.CreateUserInput) (catalog.User, error)
	CreateShelter(ctx context.Context, in registry.CreateShelterInput) (catalog.Shelter, error)
	CreatePet(ctx context.Context, in registry.CreatePetInput) (catalog.Pet, error)
	CreateAdoption(ctx context.Context, in registry.CreateAdoptionInput) (catalog.Adoption, error)
	RecordLike(ctx context.Context, in registry.LikeInput) error
	SubmitFeedback(ctx context.Context, in registry.FeedbackInput) (catalog.Feedback, error)
	PreferTags(ctx context.Context, userID int64, in registry.PreferenceInput) ([]string, error)
}

var _ Writer = (*registry.Service)(nil)

// NewSeededRNG crea un generador determinista. seed 0 usa la hora actual.
func NewSeededRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Demo corre Run sobre stores sólo si los tres son en memoria. Con algún
// store real registra un warning, no escribe nada y retorna false.
func Demo(ctx context.Context, stores *storage.Stores, opts Options) (bool, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if !stores.InMemory() {
		log.Warn("seed demo skipped: real stores configured", nil)
		return false, nil
	}
	reg := registry.NewService(stores.Relational, stores.Documents, stores.Graph, log)
	if _, err := Run(ctx, reg, opts); err != nil {
		return true, err
	}
	return true, nil
}

// Run crea refugios, usuarios, mascotas (con perfil y tags), adopciones con su
// feedback y likes sueltos. Las escrituras parciales se cuentan y se sigue.
func Run(ctx context.Context, w Writer, opts Options) (Summary, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if opts.Shelters <= 0 && opts.Pets > 0 {
		return Summary{}, fmt.Errorf("%w: pets need at least one shelter", registry.ErrInvalidInput)
	}
	if (opts.Adoptions > 0 || opts.Likes > 0) && (opts.Users <= 0 || opts.Pets <= 0) {
		return Summary{}, fmt.Errorf("%w: adoptions and likes need users and pets", registry.ErrInvalidInput)
	}

	rng := NewSeededRNG(opts.Seed)
	var sum Summary

	// check separa escrituras parciales (se cuentan) de fallas reales.
	check := func(what string, err error) error {
		if err == nil {
			return nil
		}
		if registry.IsPartialWrite(err) {
			sum.PartialWrites++
			log.Warn("seed: partial write", map[string]any{"what": what, "err": err})
			return nil
		}
		return fmt.Errorf("seed %s: %w", what, err)
	}

	for i := 0; i < opts.Shelters; i++ {
		s, err := w.CreateShelter(ctx, registry.CreateShelterInput{
			Name:     fmt.Sprintf("%s Shelter", pick(rng, shelterNames)),
			Address:  fmt.Sprintf("%d %s", 100+rng.Intn(900), pick(rng, streets)),
			Phone:    fmt.Sprintf("555-%04d", rng.Intn(10000)),
			Capacity: 20 + rng.Intn(31),
		})
		if err := check("shelter", err); err != nil {
			return sum, err
		}
		sum.ShelterIDs = append(sum.ShelterIDs, s.ID)
	}

	for i := 0; i < opts.Users; i++ {
		first, last := pick(rng, firstNames), pick(rng, lastNames)
		u, err := w.CreateUser(ctx, registry.CreateUserInput{
			Name:  first + " " + last,
			Email: fmt.Sprintf("adopter%d@example.com", i+1),
			Role:  catalog.RoleAdopter,
		})
		if err := check("user", err); err != nil {
			return sum, err
		}
		sum.UserIDs = append(sum.UserIDs, u.ID)
	}

	for i := 0; i < opts.Pets; i++ {
		petType := pick(rng, petTypes)
		p, err := w.CreatePet(ctx, registry.CreatePetInput{
			Name:      petName(i),
			Age:       1 + rng.Intn(10),
			Type:      petType,
			Breed:     pick(rng, breedsByType[petType]),
			Gender:    pick(rng, []string{"male", "female"}),
			ShelterID: sum.ShelterIDs[rng.Intn(len(sum.ShelterIDs))],
			Status:    catalog.StatusAvailable,
			Profile: &registry.ProfileInput{
				Gallery: []string{
					fmt.Sprintf("https://images.example.com/pets/%d/1.jpg", i+1),
					fmt.Sprintf("https://images.example.com/pets/%d/2.jpg", i+1),
				},
				Tags:          sample(rng, tagPool, 2),
				HealthHistory: []catalog.HealthEntry{{Vaccine: "Rabies", Date: "2024-01-01"}},
				BehaviorNotes: pick(rng, behaviorNotes),
				DietaryNeeds:  "Grain-free",
			},
		})
		if err := check("pet", err); err != nil {
			return sum, err
		}
		sum.PetIDs = append(sum.PetIDs, p.ID)
	}

	for i := 0; i < opts.Adoptions; i++ {
		userID := sum.UserIDs[rng.Intn(len(sum.UserIDs))]
		petID := sum.PetIDs[rng.Intn(len(sum.PetIDs))]

		_, err := w.CreateAdoption(ctx, registry.CreateAdoptionInput{UserID: userID, PetID: petID, Notes: "Successful match!"})
		if err := check("adoption", err); err != nil {
			return sum, err
		}
		_, err = w.SubmitFeedback(ctx, registry.FeedbackInput{
			UserID:     userID,
			PetID:      petID,
			ReviewText: "Loved the pet!",
			Rating:     4 + rng.Intn(2),
		})
		if err := check("feedback", err); err != nil {
			return sum, err
		}
		if _, err := w.PreferTags(ctx, userID, registry.PreferenceInput{Tags: sample(rng, tagPool, 1)}); err != nil {
			return sum, fmt.Errorf("seed preference: %w", err)
		}
		sum.Adoptions++
	}

	for i := 0; i < opts.Likes; i++ {
		err := w.RecordLike(ctx, registry.LikeInput{
			UserID: sum.UserIDs[rng.Intn(len(sum.UserIDs))],
			PetID:  sum.PetIDs[rng.Intn(len(sum.PetIDs))],
		})
		if err := check("like", err); err != nil {
			return sum, err
		}
		sum.Likes++
	}

	log.Info("seed done", map[string]any{
		"shelters":       len(sum.ShelterIDs),
		"users":          len(sum.UserIDs),
		"pets":           len(sum.PetIDs),
		"adoptions":      sum.Adoptions,
		"likes":          sum.Likes,
		"partial_writes": sum.PartialWrites,
	})
	return sum, nil
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// sample devuelve k elementos distintos del pool.
func sample(rng *rand.Rand, pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	idx := rng.Perm(len(pool))[:k]
	out := make([]string, 0, k)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func petName(i int) string {
	name := petNamePool[i%len(petNamePool)]
	if i >= len(petNamePool) {
		name = fmt.Sprintf("%s%d", name, i/len(petNamePool)+1)
	}
	return name
}
