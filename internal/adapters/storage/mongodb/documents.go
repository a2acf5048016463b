package mongodb

import (
	"context"
	"errors"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/ports/documents"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Documents implementa documents.Store sobre las colecciones pet_profiles y user_feedback.
type Documents struct {
	profiles *mongo.Collection
	feedback *mongo.Collection
}

var _ documents.Store = (*Documents)(nil)

func NewDocuments(db *mongo.Database) *Documents {
	return &Documents{
		profiles: db.Collection(CollectionProfiles),
		feedback: db.Collection(CollectionFeedback),
	}
}

// fila genérica de un $group con clave entera.
type idCount struct {
	ID    int64 `bson:"_id"`
	Count int   `bson:"count"`
}

func (d *Documents) FindProfilesByTags(ctx context.Context, tags []string) ([]catalog.PetProfile, error) {
	if len(tags) == 0 {
		return []catalog.PetProfile{}, nil
	}

	cur, err := d.profiles.Find(ctx, bson.M{"tags": bson.M{"$in": tags}})
	if err != nil {
		return nil, err
	}

	out := make([]catalog.PetProfile, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Documents) ProfileByPet(ctx context.Context, petID int64) (catalog.PetProfile, error) {
	var p catalog.PetProfile
	err := d.profiles.FindOne(ctx, bson.M{"pet_id": petID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return catalog.PetProfile{}, documents.ErrNotFound
	}
	if err != nil {
		return catalog.PetProfile{}, err
	}
	return p, nil
}

func (d *Documents) AverageRatingsByPet(ctx context.Context) (map[int64]float64, error) {
	cur, err := d.feedback.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$pet_id"},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID  int64   `bson:"_id"`
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[int64]float64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Avg
	}
	return out, nil
}

// SharedFeedbackCounts: mascotas reseñadas por userID, luego otros usuarios
// que reseñaron esas mismas mascotas (mascotas distintas por usuario).
func (d *Documents) SharedFeedbackCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	mine, err := d.distinctPetIDs(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return map[int64]int{}, nil
	}

	cur, err := d.feedback.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "pet_id", Value: bson.D{{Key: "$in", Value: mine}}},
			{Key: "user_id", Value: bson.D{{Key: "$ne", Value: userID}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "pets", Value: bson.D{{Key: "$addToSet", Value: "$pet_id"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "count", Value: bson.D{{Key: "$size", Value: "$pets"}}},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []idCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[int64]int, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Count
	}
	return out, nil
}

func (d *Documents) ReviewedPetIDs(ctx context.Context) ([]int64, error) {
	return d.distinctPetIDs(ctx, bson.M{})
}

func (d *Documents) CountFeedbackByUser(ctx context.Context, userID int64) (int, error) {
	n, err := d.feedback.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (d *Documents) AvailableCountsByTag(ctx context.Context, petIDs []int64) (map[string]int, error) {
	if len(petIDs) == 0 {
		return map[string]int{}, nil
	}

	cur, err := d.profiles.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "pet_id", Value: bson.D{{Key: "$in", Value: petIDs}}}}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "pets", Value: bson.D{{Key: "$addToSet", Value: "$pet_id"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "count", Value: bson.D{{Key: "$size", Value: "$pets"}}},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Tag   string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Tag] = r.Count
	}
	return out, nil
}

func (d *Documents) InsertProfile(ctx context.Context, p catalog.PetProfile) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err := d.profiles.InsertOne(ctx, p)
	return err
}

func (d *Documents) InsertFeedback(ctx context.Context, f catalog.Feedback) error {
	_, err := d.feedback.InsertOne(ctx, f)
	return err
}

// distinctPetIDs devuelve los pet_id distintos del filtro, ascendentes.
func (d *Documents) distinctPetIDs(ctx context.Context, filter bson.M) ([]int64, error) {
	cur, err := d.feedback.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$pet_id"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID int64 `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out, nil
}
