package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Nombres de colecciones.
const (
	CollectionProfiles = "pet_profiles"
	CollectionFeedback = "user_feedback"
)

// Open conecta al cluster y hace ping. El caller es dueño de Disconnect.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices que usan las consultas (idempotente).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionProfiles).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "pet_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("profiles indexes: %w", err)
	}

	_, err = db.Collection(CollectionFeedback).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "feedback_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "pet_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("feedback indexes: %w", err)
	}
	return nil
}
