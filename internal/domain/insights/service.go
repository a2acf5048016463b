package insights

import (
	"context"
	"errors"
	"time"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/platform/logger"
	"pet-adoption-insights/internal/platform/metrics"
	"pet-adoption-insights/internal/ports/documents"
	"pet-adoption-insights/internal/ports/graph"
	"pet-adoption-insights/internal/ports/relational"
)

// Service es el motor de agregación cross-store. Todas las operaciones son
// de solo lectura y secuenciales: fetch -> merge -> resolve.
type Service struct {
	rel   relational.Store
	docs  documents.Store
	graph graph.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(rel relational.Store, docs documents.Store, g graph.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		rel:   rel,
		docs:  docs,
		graph: g,
		log:   log.With(map[string]any{"component": "insights"}),
		now:   time.Now,
	}
}

// RecommendPets recomienda hasta limit mascotas disponibles según overlap
// entre los tags del perfil y los tags preferidos del usuario.
// found=false si el usuario no existe.
func (s *Service) RecommendPets(ctx context.Context, userID int64, limit int) (out []catalog.Pet, found bool, err error) {
	const op = "recommend_pets"
	defer s.observe(op, s.now(), &found, &err)

	if limit < 0 {
		return nil, true, ErrInvalidInput
	}

	if _, found, err = s.lookupUser(ctx, userID); err != nil || !found {
		return nil, found, err
	}

	preferred, err := s.graph.PreferredTags(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreGraph, "preferred tags", err)
	}
	interacted, err := s.graph.InteractedPetIDs(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreGraph, "interacted pets", err)
	}
	adopted, err := s.graph.AdoptedPetIDs(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreGraph, "adopted pets", err)
	}

	if len(preferred) == 0 {
		return []catalog.Pet{}, true, nil
	}

	profiles, err := s.docs.FindProfilesByTags(ctx, preferred)
	if err != nil {
		return nil, true, s.storeErr(StoreDocuments, "find profiles by tags", err)
	}

	scored := scoreCandidates(profiles, preferred, toSet(adopted), toSet(interacted))
	ids := head(scored, limit, func(c scoredPet) int64 { return c.PetID })

	pets, err := s.resolvePets(ctx, ids)
	if err != nil {
		return nil, true, err
	}

	s.log.Debug("recommendations computed", map[string]any{
		"user_id":    userID,
		"preferred":  len(preferred),
		"candidates": len(scored),
		"returned":   len(pets),
	})
	return pets, true, nil
}

// MostAdoptablePets rankea mascotas disponibles por likes + rating promedio.
func (s *Service) MostAdoptablePets(ctx context.Context, limit int) (out []catalog.Pet, err error) {
	const op = "most_adoptable_pets"
	found := true
	defer s.observe(op, s.now(), &found, &err)

	if limit < 0 {
		return nil, ErrInvalidInput
	}

	available, err := s.rel.AvailablePetIDs(ctx)
	if err != nil {
		return nil, s.storeErr(StoreRelational, "available pet ids", err)
	}
	likes, err := s.graph.LikeCountsByPet(ctx)
	if err != nil {
		return nil, s.storeErr(StoreGraph, "like counts by pet", err)
	}
	ratings, err := s.docs.AverageRatingsByPet(ctx)
	if err != nil {
		return nil, s.storeErr(StoreDocuments, "average ratings", err)
	}

	ranked := scoreAdoptability(available, likes, ratings)
	ids := head(ranked, limit, func(a adoptability) int64 { return a.PetID })

	return s.resolvePets(ctx, ids)
}

// UserConnections devuelve los usuarios más parecidos sumando cuatro mapas de
// conteos compartidos (likes, tags preferidos, adopciones, feedback).
// found=false si el usuario no existe; sin coincidencias devuelve slice vacío.
func (s *Service) UserConnections(ctx context.Context, userID int64, limit int) (out []catalog.User, found bool, err error) {
	const op = "user_connections"
	defer s.observe(op, s.now(), &found, &err)

	if limit < 0 {
		return nil, true, ErrInvalidInput
	}

	if _, found, err = s.lookupUser(ctx, userID); err != nil || !found {
		return nil, found, err
	}

	likes, err := s.graph.SharedLikeCounts(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreGraph, "shared likes", err)
	}
	tags, err := s.graph.SharedPreferredTagCounts(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreGraph, "shared preferred tags", err)
	}
	adoptions, err := s.rel.SharedAdoptionCounts(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreRelational, "shared adoptions", err)
	}
	feedback, err := s.docs.SharedFeedbackCounts(ctx, userID)
	if err != nil {
		return nil, true, s.storeErr(StoreDocuments, "shared feedback", err)
	}

	scores := mergeSharedCounts(likes, tags, adoptions, feedback)
	// el propio usuario nunca es conexión de sí mismo
	delete(scores, userID)
	if len(scores) == 0 {
		return []catalog.User{}, true, nil
	}

	ids := head(rankUsers(scores), limit, func(r rankedUser) int64 { return r.UserID })

	users := make([]catalog.User, 0, len(ids))
	for _, id := range ids {
		u, ok, err := s.lookupUser(ctx, id)
		if err != nil {
			return nil, true, err
		}
		if !ok {
			// referencia colgante en otro store: se ignora
			s.log.Debug("dangling user reference", map[string]any{"user_id": id})
			continue
		}
		users = append(users, u)
	}
	return users, true, nil
}

// LowEngagementPets: disponibles, sin LIKES y sin feedback; orden ascendente por id.
func (s *Service) LowEngagementPets(ctx context.Context) (out []catalog.Pet, err error) {
	const op = "low_engagement_pets"
	found := true
	defer s.observe(op, s.now(), &found, &err)

	unliked, err := s.graph.UnlikedPetIDs(ctx)
	if err != nil {
		return nil, s.storeErr(StoreGraph, "unliked pets", err)
	}
	available, err := s.rel.AvailablePetIDs(ctx)
	if err != nil {
		return nil, s.storeErr(StoreRelational, "available pet ids", err)
	}
	reviewed, err := s.docs.ReviewedPetIDs(ctx)
	if err != nil {
		return nil, s.storeErr(StoreDocuments, "reviewed pets", err)
	}

	return s.resolvePets(ctx, lowEngagementIDs(unliked, available, reviewed))
}

// UserEngagement cuenta likes, feedbacks y adopciones del usuario.
func (s *Service) UserEngagement(ctx context.Context, userID int64) (out EngagementReport, found bool, err error) {
	const op = "user_engagement"
	defer s.observe(op, s.now(), &found, &err)

	u, found, err := s.lookupUser(ctx, userID)
	if err != nil || !found {
		return EngagementReport{}, found, err
	}

	likes, err := s.graph.CountLikesByUser(ctx, userID)
	if err != nil {
		return EngagementReport{}, true, s.storeErr(StoreGraph, "count likes", err)
	}
	feedbacks, err := s.docs.CountFeedbackByUser(ctx, userID)
	if err != nil {
		return EngagementReport{}, true, s.storeErr(StoreDocuments, "count feedback", err)
	}
	adoptions, err := s.rel.CountAdoptionsByUser(ctx, userID)
	if err != nil {
		return EngagementReport{}, true, s.storeErr(StoreRelational, "count adoptions", err)
	}

	return EngagementReport{
		UserID:    u.ID,
		Name:      u.Name,
		Likes:     likes,
		Feedbacks: feedbacks,
		Adoptions: adoptions,
	}, true, nil
}

// ForecastDemand compara demanda (LIKES) contra oferta (mascotas disponibles)
// por raza y por tag.
func (s *Service) ForecastDemand(ctx context.Context) (out Forecast, err error) {
	const op = "forecast_demand"
	found := true
	defer s.observe(op, s.now(), &found, &err)

	breedDemand, err := s.graph.LikeCountsByBreed(ctx)
	if err != nil {
		return Forecast{}, s.storeErr(StoreGraph, "likes by breed", err)
	}
	tagDemand, err := s.graph.LikeCountsByTag(ctx)
	if err != nil {
		return Forecast{}, s.storeErr(StoreGraph, "likes by tag", err)
	}

	breedSupply, err := s.rel.AvailablePetCountsByBreed(ctx)
	if err != nil {
		return Forecast{}, s.storeErr(StoreRelational, "available by breed", err)
	}
	available, err := s.rel.AvailablePetIDs(ctx)
	if err != nil {
		return Forecast{}, s.storeErr(StoreRelational, "available pet ids", err)
	}
	tagSupply := map[string]int{}
	if len(available) > 0 {
		tagSupply, err = s.docs.AvailableCountsByTag(ctx, available)
		if err != nil {
			return Forecast{}, s.storeErr(StoreDocuments, "available by tag", err)
		}
	}

	return Forecast{
		ByBreed: forecastRows(breedDemand, breedSupply),
		ByTag:   forecastRows(tagDemand, tagSupply),
	}, nil
}

func (s *Service) lookupUser(ctx context.Context, id int64) (catalog.User, bool, error) {
	u, err := s.rel.GetUser(ctx, id)
	if errors.Is(err, relational.ErrNotFound) {
		return catalog.User{}, false, nil
	}
	if err != nil {
		return catalog.User{}, false, s.storeErr(StoreRelational, "get user", err)
	}
	return u, true, nil
}

// resolvePets trae los registros disponibles y respeta el orden de ids.
// Sin ids no hay round-trip.
func (s *Service) resolvePets(ctx context.Context, ids []int64) ([]catalog.Pet, error) {
	if len(ids) == 0 {
		return []catalog.Pet{}, nil
	}
	pets, err := s.rel.AvailablePetsByIDs(ctx, ids)
	if err != nil {
		return nil, s.storeErr(StoreRelational, "pets by ids", err)
	}
	return orderPets(pets, ids), nil
}

func (s *Service) storeErr(store, op string, err error) error {
	metrics.StoreErrors.WithLabelValues(store, op).Inc()
	return &StoreError{Store: store, Op: op, Err: err}
}

func (s *Service) observe(op string, start time.Time, found *bool, err *error) {
	metrics.OperationDuration.WithLabelValues(op).Observe(s.now().Sub(start).Seconds())

	outcome := metrics.OutcomeOK
	switch {
	case *err != nil && errors.Is(*err, ErrInvalidInput):
		outcome = metrics.OutcomeInvalid
	case *err != nil:
		outcome = metrics.OutcomeStoreError
		s.log.Error("aggregation failed", map[string]any{"operation": op, "err": *err})
	case !*found:
		outcome = metrics.OutcomeNotFound
	}
	metrics.OperationTotal.WithLabelValues(op, outcome).Inc()
}
