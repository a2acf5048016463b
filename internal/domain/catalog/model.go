package catalog

import "time"

// PetStatus define el estado de una mascota en el refugio.
// @Enum available, adopted, on_hold
type PetStatus string

const (
	StatusAvailable PetStatus = "available"
	StatusAdopted   PetStatus = "adopted"
	StatusOnHold    PetStatus = "on_hold"
)

// Role define el rol de un usuario.
type Role string

const (
	RoleAdopter Role = "adopter"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// User es el registro canónico de un usuario (store relacional).
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Shelter es un refugio (store relacional).
type Shelter struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Capacity int    `json:"capacity"`
}

// Pet es el registro canónico de una mascota (store relacional).
type Pet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Type      string    `json:"type"` // dog, cat, rabbit...
	Breed     string    `json:"breed"`
	Gender    string    `json:"gender"`
	ShelterID int64     `json:"shelter_id,omitempty"` // 0 = sin refugio
	Status    PetStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAvailable reporta si la mascota cuenta como oferta.
func (p Pet) IsAvailable() bool {
	return p.Status == StatusAvailable
}

// Adoption registra una adopción (store relacional).
type Adoption struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PetID     int64     `json:"pet_id"`
	Notes     string    `json:"notes"`
	AdoptedAt time.Time `json:"adopted_at"`
}

type HealthEntry struct {
	Vaccine string `json:"vaccine" bson:"vaccine"`
	Date    string `json:"date" bson:"date"` // YYYY-MM-DD
}

// PetProfile es el perfil semi-estructurado de una mascota (store documental).
type PetProfile struct {
	PetID         int64         `json:"pet_id" bson:"pet_id"`
	Gallery       []string      `json:"gallery" bson:"gallery"`
	Tags          []string      `json:"tags" bson:"tags"`
	HealthHistory []HealthEntry `json:"health_history" bson:"healthHistory"`
	BehaviorNotes string        `json:"behavior_notes" bson:"behaviorNotes"`
	DietaryNeeds  string        `json:"dietary_needs" bson:"dietaryNeeds"`
}

// Feedback es una reseña de un usuario sobre una mascota (store documental).
type Feedback struct {
	ID         string    `json:"id" bson:"feedback_id"`
	UserID     int64     `json:"user_id" bson:"user_id"`
	PetID      int64     `json:"pet_id" bson:"pet_id"`
	ReviewText string    `json:"review_text" bson:"reviewText"`
	Rating     int       `json:"rating" bson:"rating"` // 1..5
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

const (
	MinRating = 1
	MaxRating = 5
)
