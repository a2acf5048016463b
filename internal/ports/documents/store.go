package documents

import (
	"context"
	"errors"

	"pet-adoption-insights/internal/domain/catalog"
)

var ErrNotFound = errors.New("not found")

// Store expone perfiles y feedback del store documental.
type Store interface {
	// FindProfilesByTags devuelve perfiles que comparten al menos un tag.
	FindProfilesByTags(ctx context.Context, tags []string) ([]catalog.PetProfile, error)
	ProfileByPet(ctx context.Context, petID int64) (catalog.PetProfile, error)

	// AverageRatingsByPet: pet -> rating promedio. Mascotas sin feedback no aparecen.
	AverageRatingsByPet(ctx context.Context) (map[int64]float64, error)

	// SharedFeedbackCounts: otro usuario -> cantidad de mascotas reseñadas por ambos.
	SharedFeedbackCounts(ctx context.Context, userID int64) (map[int64]int, error)

	// ReviewedPetIDs: mascotas con al menos un feedback.
	ReviewedPetIDs(ctx context.Context) ([]int64, error)
	CountFeedbackByUser(ctx context.Context, userID int64) (int, error)

	// AvailableCountsByTag cuenta mascotas por tag restringido a petIDs.
	AvailableCountsByTag(ctx context.Context, petIDs []int64) (map[string]int, error)

	InsertProfile(ctx context.Context, p catalog.PetProfile) error
	InsertFeedback(ctx context.Context, f catalog.Feedback) error
}
