package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/platform/logger"
	"pet-adoption-insights/internal/platform/metrics"
	"pet-adoption-insights/internal/ports/documents"
	"pet-adoption-insights/internal/ports/graph"
	"pet-adoption-insights/internal/ports/relational"

	"github.com/google/uuid"
)

// Service es la capa de creación: escrituras pareadas sobre los tres stores.
// La escritura primaria define el éxito; las secundarias son best-effort y
// sus fallas vuelven como *PartialWriteError junto con el registro creado.
type Service struct {
	rel   relational.Store
	docs  documents.Store
	graph graph.Store
	log   logger.Logger

	now   func() time.Time
	newID func() string
}

func NewService(rel relational.Store, docs documents.Store, g graph.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		rel:   rel,
		docs:  docs,
		graph: g,
		log:   log.With(map[string]any{"component": "registry"}),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (catalog.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return catalog.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = catalog.RoleAdopter
	}
	if !isValidRole(role) {
		return catalog.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	u, err := s.rel.CreateUser(ctx, catalog.User{
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      role,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return catalog.User{}, fmt.Errorf("create user: %w", err)
	}

	var sec secondary
	sec.add("graph", "upsert user", s.graph.UpsertUser(ctx, u.ID, u.Name))
	return u, s.finish(EntityUser, idString(u.ID), &sec)
}

func (s *Service) CreateShelter(ctx context.Context, in CreateShelterInput) (catalog.Shelter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return catalog.Shelter{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Capacity < 0 {
		return catalog.Shelter{}, fmt.Errorf("%w: capacity must be >= 0", ErrInvalidInput)
	}

	sh, err := s.rel.CreateShelter(ctx, catalog.Shelter{
		Name:     name,
		Address:  strings.TrimSpace(in.Address),
		Phone:    strings.TrimSpace(in.Phone),
		Capacity: in.Capacity,
	})
	if err != nil {
		return catalog.Shelter{}, fmt.Errorf("create shelter: %w", err)
	}

	var sec secondary
	sec.add("graph", "upsert shelter", s.graph.UpsertShelter(ctx, sh.ID, sh.Name))
	return sh, s.finish(EntityShelter, idString(sh.ID), &sec)
}

// CreatePet escribe el registro canónico, luego el nodo Pet (breed + OF_BREED),
// LOCATED_AT, el perfil documental y las relaciones HAS_TAG.
func (s *Service) CreatePet(ctx context.Context, in CreatePetInput) (catalog.Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return catalog.Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Age < 0 {
		return catalog.Pet{}, fmt.Errorf("%w: age must be >= 0", ErrInvalidInput)
	}
	if in.ShelterID < 0 {
		return catalog.Pet{}, fmt.Errorf("%w: invalid shelter_id", ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = catalog.StatusAvailable
	}
	if !isValidStatus(status) {
		return catalog.Pet{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	p, err := s.rel.CreatePet(ctx, catalog.Pet{
		Name:      name,
		Age:       in.Age,
		Type:      strings.ToLower(strings.TrimSpace(in.Type)),
		Breed:     strings.TrimSpace(in.Breed),
		Gender:    strings.ToLower(strings.TrimSpace(in.Gender)),
		ShelterID: in.ShelterID,
		Status:    status,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return catalog.Pet{}, fmt.Errorf("create pet: %w", err)
	}

	var sec secondary
	nodeErr := s.graph.UpsertPet(ctx, p.ID, p.Name, p.Breed)
	sec.add("graph", "upsert pet", nodeErr)
	if nodeErr == nil && p.ShelterID > 0 {
		sec.add("graph", "located at", s.graph.LinkPetToShelter(ctx, p.ID, p.ShelterID))
	}

	if in.Profile != nil {
		prof := catalog.PetProfile{
			PetID:         p.ID,
			Gallery:       in.Profile.Gallery,
			Tags:          catalog.NormalizeTags(in.Profile.Tags),
			HealthHistory: in.Profile.HealthHistory,
			BehaviorNotes: strings.TrimSpace(in.Profile.BehaviorNotes),
			DietaryNeeds:  strings.TrimSpace(in.Profile.DietaryNeeds),
		}
		sec.add("documents", "insert profile", s.docs.InsertProfile(ctx, prof))

		if nodeErr == nil {
			for _, t := range prof.Tags {
				sec.add("graph", "has tag "+t, s.graph.TagPet(ctx, p.ID, t))
			}
		}
	}

	return p, s.finish(EntityPet, idString(p.ID), &sec)
}

func (s *Service) CreateAdoption(ctx context.Context, in CreateAdoptionInput) (catalog.Adoption, error) {
	if err := s.requireUserAndPet(ctx, in.UserID, in.PetID); err != nil {
		return catalog.Adoption{}, err
	}

	a, err := s.rel.CreateAdoption(ctx, catalog.Adoption{
		UserID:    in.UserID,
		PetID:     in.PetID,
		Notes:     strings.TrimSpace(in.Notes),
		AdoptedAt: s.now().UTC(),
	})
	if err != nil {
		return catalog.Adoption{}, fmt.Errorf("create adoption: %w", err)
	}

	var sec secondary
	sec.add("graph", "adopted", s.graph.AddAdoption(ctx, a.UserID, a.PetID))
	return a, s.finish(EntityAdoption, idString(a.ID), &sec)
}

// RecordLike crea LIKES y suma los tags del perfil a PREFERS_TAG del usuario.
func (s *Service) RecordLike(ctx context.Context, in LikeInput) error {
	if err := s.requireUserAndPet(ctx, in.UserID, in.PetID); err != nil {
		return err
	}

	if err := s.graph.AddLike(ctx, in.UserID, in.PetID); err != nil {
		return fmt.Errorf("record like: %w", err)
	}

	var sec secondary
	s.derivePreferences(ctx, in.UserID, in.PetID, &sec)
	return s.finish(EntityLike, idString(in.UserID)+"->"+idString(in.PetID), &sec)
}

// SubmitFeedback guarda la reseña; con rating alto deriva preferencias.
func (s *Service) SubmitFeedback(ctx context.Context, in FeedbackInput) (catalog.Feedback, error) {
	if in.Rating < catalog.MinRating || in.Rating > catalog.MaxRating {
		return catalog.Feedback{}, fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, catalog.MinRating, catalog.MaxRating)
	}
	if err := s.requireUserAndPet(ctx, in.UserID, in.PetID); err != nil {
		return catalog.Feedback{}, err
	}

	f := catalog.Feedback{
		ID:         s.newID(),
		UserID:     in.UserID,
		PetID:      in.PetID,
		ReviewText: strings.TrimSpace(in.ReviewText),
		Rating:     in.Rating,
		Timestamp:  s.now().UTC(),
	}
	if err := s.docs.InsertFeedback(ctx, f); err != nil {
		return catalog.Feedback{}, fmt.Errorf("submit feedback: %w", err)
	}

	var sec secondary
	if f.Rating >= PreferredRatingThreshold {
		s.derivePreferences(ctx, f.UserID, f.PetID, &sec)
	}
	return f, s.finish(EntityFeedback, f.ID, &sec)
}

// PreferTags agrega PREFERS_TAG explícitos. Devuelve los tags normalizados.
func (s *Service) PreferTags(ctx context.Context, userID int64, in PreferenceInput) ([]string, error) {
	tags := catalog.NormalizeTags(in.Tags)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: at least one tag is required", ErrInvalidInput)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	for _, t := range tags {
		if err := s.graph.PreferTag(ctx, userID, t); err != nil {
			return nil, fmt.Errorf("prefer tag %q: %w", t, err)
		}
	}
	return tags, nil
}

// AddFriendship crea FRIEND_OF en ambos sentidos.
func (s *Service) AddFriendship(ctx context.Context, in FriendshipInput) error {
	if in.UserID == in.OtherID {
		return fmt.Errorf("%w: a user cannot befriend themselves", ErrInvalidInput)
	}
	if err := s.requireUser(ctx, in.UserID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, in.OtherID); err != nil {
		return err
	}

	if err := s.graph.AddFriendship(ctx, in.UserID, in.OtherID); err != nil {
		return fmt.Errorf("add friendship: %w", err)
	}
	if err := s.graph.AddFriendship(ctx, in.OtherID, in.UserID); err != nil {
		return fmt.Errorf("add friendship: %w", err)
	}
	return nil
}

func (s *Service) LinkSimilarBreeds(ctx context.Context, in SimilarBreedsInput) error {
	a := strings.TrimSpace(in.Breed)
	b := strings.TrimSpace(in.Other)
	if a == "" || b == "" {
		return fmt.Errorf("%w: breed and other are required", ErrInvalidInput)
	}
	if strings.EqualFold(a, b) {
		return fmt.Errorf("%w: a breed cannot be similar to itself", ErrInvalidInput)
	}
	if err := s.graph.LinkSimilarBreeds(ctx, a, b); err != nil {
		return fmt.Errorf("link similar breeds: %w", err)
	}
	return nil
}

// derivePreferences copia los tags del perfil de la mascota a PREFERS_TAG.
// Mascota sin perfil: no hay nada que derivar.
func (s *Service) derivePreferences(ctx context.Context, userID, petID int64, sec *secondary) {
	prof, err := s.docs.ProfileByPet(ctx, petID)
	if errors.Is(err, documents.ErrNotFound) {
		return
	}
	if err != nil {
		sec.add("documents", "profile by pet", err)
		return
	}
	for _, t := range catalog.NormalizeTags(prof.Tags) {
		sec.add("graph", "prefers tag "+t, s.graph.PreferTag(ctx, userID, t))
	}
}

func (s *Service) requireUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	}
	_, err := s.rel.GetUser(ctx, id)
	if errors.Is(err, relational.ErrNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}

func (s *Service) requireUserAndPet(ctx context.Context, userID, petID int64) error {
	if petID <= 0 {
		return fmt.Errorf("%w: invalid pet id", ErrInvalidInput)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	_, err := s.rel.GetPet(ctx, petID)
	if errors.Is(err, relational.ErrNotFound) {
		return fmt.Errorf("%w: pet %d", ErrNotFound, petID)
	}
	if err != nil {
		return fmt.Errorf("get pet: %w", err)
	}
	return nil
}

type secondary struct {
	errs []error
}

func (sec *secondary) add(store, op string, err error) {
	if err == nil {
		return
	}
	sec.errs = append(sec.errs, fmt.Errorf("%s: %s: %w", store, op, err))
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }

func (s *Service) finish(entity, id string, sec *secondary) error {
	if len(sec.errs) == 0 {
		return nil
	}
	metrics.PartialWrites.WithLabelValues(entity).Inc()

	pw := &PartialWriteError{Entity: entity, ID: id, Errs: sec.errs}
	s.log.Warn("partial write", map[string]any{
		"entity": entity,
		"id":     id,
		"failed": len(sec.errs),
		"err":    pw,
	})
	return pw
}
