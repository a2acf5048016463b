package relational

import (
	"context"
	"errors"

	"pet-adoption-insights/internal/domain/catalog"
)

// ErrNotFound lo devuelven los adapters cuando el registro no existe.
var ErrNotFound = errors.New("not found")

// Store expone las lecturas/escrituras tipadas sobre el store relacional
// (dueño de la identidad de User, Pet, Shelter y Adoption).
type Store interface {
	GetUser(ctx context.Context, id int64) (catalog.User, error)
	GetPet(ctx context.Context, id int64) (catalog.Pet, error)

	// AvailablePetsByIDs devuelve solo las mascotas con status available.
	// Ids inexistentes o no disponibles se omiten. El orden no está garantizado.
	AvailablePetsByIDs(ctx context.Context, ids []int64) ([]catalog.Pet, error)
	AvailablePetIDs(ctx context.Context) ([]int64, error)
	AvailablePetCountsByBreed(ctx context.Context) (map[string]int, error)

	CountAdoptionsByUser(ctx context.Context, userID int64) (int, error)

	// SharedAdoptionCounts: otro usuario -> cantidad de mascotas adoptadas por ambos.
	SharedAdoptionCounts(ctx context.Context, userID int64) (map[int64]int, error)

	CreateUser(ctx context.Context, u catalog.User) (catalog.User, error)
	CreateShelter(ctx context.Context, s catalog.Shelter) (catalog.Shelter, error)
	CreatePet(ctx context.Context, p catalog.Pet) (catalog.Pet, error)
	CreateAdoption(ctx context.Context, a catalog.Adoption) (catalog.Adoption, error)
}
