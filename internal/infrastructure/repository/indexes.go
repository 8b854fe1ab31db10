package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique per-shop indexes backing the one-record-per-shop invariants
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := map[string]string{
		settingsCollection:     "shop",
		productLinksCollection: "shop",
		shopsCollection:        "domain",
	}

	for collection, key := range unique {
		indexModel := mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, indexModel); err != nil {
			return fmt.Errorf("failed to create index on %s.%s: %w", collection, key, err)
		}
	}
	return nil
}
