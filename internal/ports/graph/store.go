package graph

import (
	"context"
	"errors"
)

// ErrNodeNotFound: la relación referencia un nodo que no existe.
var ErrNodeNotFound = errors.New("graph node not found")

// Tipos de relación usados en el grafo.
const (
	EdgeLikes        = "LIKES"
	EdgeAdopted      = "ADOPTED"
	EdgePrefersTag   = "PREFERS_TAG"
	EdgeOfBreed      = "OF_BREED"
	EdgeHasTag       = "HAS_TAG"
	EdgeLocatedAt    = "LOCATED_AT"
	EdgeFriendOf     = "FRIEND_OF"
	EdgeSimilarBreed = "SIMILAR_BREED"
)

// Store expone relaciones y preferencias del store de grafo.
// Los nodos referencian ids del store relacional; no son dueños de identidad.
type Store interface {
	PreferredTags(ctx context.Context, userID int64) ([]string, error)

	// InteractedPetIDs: mascotas con LIKES o ADOPTED desde el usuario.
	InteractedPetIDs(ctx context.Context, userID int64) ([]int64, error)
	AdoptedPetIDs(ctx context.Context, userID int64) ([]int64, error)

	// LikeCountsByPet: pet -> LIKES entrantes. Mascotas sin likes no aparecen.
	LikeCountsByPet(ctx context.Context) (map[int64]int, error)
	SharedLikeCounts(ctx context.Context, userID int64) (map[int64]int, error)
	SharedPreferredTagCounts(ctx context.Context, userID int64) (map[int64]int, error)

	// UnlikedPetIDs: nodos Pet sin LIKES entrantes.
	UnlikedPetIDs(ctx context.Context) ([]int64, error)
	CountLikesByUser(ctx context.Context, userID int64) (int, error)

	LikeCountsByBreed(ctx context.Context) (map[string]int, error)
	LikeCountsByTag(ctx context.Context) (map[string]int, error)

	UpsertUser(ctx context.Context, userID int64, name string) error
	UpsertShelter(ctx context.Context, shelterID int64, name string) error
	// UpsertPet crea el nodo con propiedad breed y la relación OF_BREED.
	UpsertPet(ctx context.Context, petID int64, name, breed string) error
	LinkPetToShelter(ctx context.Context, petID, shelterID int64) error
	TagPet(ctx context.Context, petID int64, tag string) error
	AddLike(ctx context.Context, userID, petID int64) error
	AddAdoption(ctx context.Context, userID, petID int64) error
	PreferTag(ctx context.Context, userID int64, tag string) error
	AddFriendship(ctx context.Context, userID, otherID int64) error
	LinkSimilarBreeds(ctx context.Context, breed, other string) error
}
