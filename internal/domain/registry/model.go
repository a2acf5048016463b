package registry

import (
	"errors"
	"fmt"
	"strings"

	"pet-adoption-insights/internal/domain/catalog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Nombre de entidad en PartialWriteError y en la métrica de escrituras parciales.
const (
	EntityUser     = "user"
	EntityShelter  = "shelter"
	EntityPet      = "pet"
	EntityAdoption = "adoption"
	EntityLike     = "like"
	EntityFeedback = "feedback"
)

// PartialWriteError indica que la escritura primaria se hizo pero alguna
// escritura secundaria (grafo / documentos) falló. No hay rollback.
type PartialWriteError struct {
	Entity string
	ID     string
	Errs   []error
}

func (e *PartialWriteError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s %s: partial write: %s", e.Entity, e.ID, strings.Join(msgs, "; "))
}

func (e *PartialWriteError) Unwrap() []error { return e.Errs }

// IsPartialWrite reporta si err es una escritura parcial (el registro principal existe).
func IsPartialWrite(err error) bool {
	var pw *PartialWriteError
	return errors.As(err, &pw)
}

type CreateUserInput struct {
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  catalog.Role `json:"role,omitempty"`
}

type CreateShelterInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Capacity int    `json:"capacity"`
}

type ProfileInput struct {
	Gallery       []string              `json:"gallery,omitempty"`
	Tags          []string              `json:"tags,omitempty"`
	HealthHistory []catalog.HealthEntry `json:"health_history,omitempty"`
	BehaviorNotes string                `json:"behavior_notes,omitempty"`
	DietaryNeeds  string                `json:"dietary_needs,omitempty"`
}

type CreatePetInput struct {
	Name      string            `json:"name"`
	Age       int               `json:"age"`
	Type      string            `json:"type"`
	Breed     string            `json:"breed"`
	Gender    string            `json:"gender"`
	ShelterID int64             `json:"shelter_id,omitempty"`
	Status    catalog.PetStatus `json:"status,omitempty"` // default: available
	Profile   *ProfileInput     `json:"profile,omitempty"`
}

type CreateAdoptionInput struct {
	UserID int64  `json:"user_id"`
	PetID  int64  `json:"pet_id"`
	Notes  string `json:"notes"`
}

type LikeInput struct {
	UserID int64 `json:"user_id"`
	PetID  int64 `json:"pet_id"`
}

type FeedbackInput struct {
	UserID     int64  `json:"user_id"`
	PetID      int64  `json:"pet_id"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

type FriendshipInput struct {
	UserID  int64 `json:"user_id"`
	OtherID int64 `json:"other_id"`
}

type PreferenceInput struct {
	Tags []string `json:"tags"`
}

type SimilarBreedsInput struct {
	Breed string `json:"breed"`
	Other string `json:"other"`
}

// PreferredRatingThreshold: un feedback con rating >= a esto suma los tags
// del perfil a las preferencias del usuario.
const PreferredRatingThreshold = 4

func isValidRole(r catalog.Role) bool {
	switch r {
	case catalog.RoleAdopter, catalog.RoleStaff, catalog.RoleAdmin:
		return true
	default:
		return false
	}
}

func isValidStatus(s catalog.PetStatus) bool {
	switch s {
	case catalog.StatusAvailable, catalog.StatusAdopted, catalog.StatusOnHold:
		return true
	default:
		return false
	}
}
