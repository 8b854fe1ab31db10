package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/infrastructure/repository/entity"
	"giftwrap-admin-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const settingsCollection = "settings"

// MongoSettingsRepository implements SettingsRepository using MongoDB
type MongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new MongoDB settings repository
func NewMongoSettingsRepository(db *mongo.Database) ports.SettingsRepository {
	return &MongoSettingsRepository{
		collection: db.Collection(settingsCollection),
	}
}

// GetByShop retrieves the settings record of a shop
func (r *MongoSettingsRepository) GetByShop(ctx context.Context, shop string) (*domain.Settings, error) {
	var doc entity.MongoSettingsDoc
	err := r.collection.FindOne(ctx, bson.M{"shop": shop}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("settings.get", fmt.Errorf("failed to get settings: %w", err))
	}

	return doc.ToDomain(), nil
}

// Create inserts the first settings record of a shop and assigns its ID
func (r *MongoSettingsRepository) Create(ctx context.Context, settings *domain.Settings) error {
	doc := entity.MongoSettingsDocFromDomain(settings)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewPersistenceError("settings.create", fmt.Errorf("settings for shop %s: %w", settings.Shop, domain.ErrAlreadyExists))
		}
		return domain.NewPersistenceError("settings.create", fmt.Errorf("failed to create settings: %w", err))
	}

	settings.ID = doc.ID.Hex()
	settings.CreatedAt = doc.CreatedAt
	settings.UpdatedAt = doc.UpdatedAt
	return nil
}

// Update overwrites the settings record identified by settings.ID
func (r *MongoSettingsRepository) Update(ctx context.Context, settings *domain.Settings) error {
	objID, err := primitive.ObjectIDFromHex(settings.ID)
	if err != nil {
		return domain.NewPersistenceError("settings.update", fmt.Errorf("invalid settings ID: %w", err))
	}

	doc := entity.MongoSettingsDocFromDomain(settings)
	doc.ID = primitive.NilObjectID
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": doc})
	if err != nil {
		return domain.NewPersistenceError("settings.update", fmt.Errorf("failed to update settings: %w", err))
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("settings.update", fmt.Errorf("settings %s not found", settings.ID))
	}

	return nil
}

// DeleteByShop deletes the settings record of a shop
func (r *MongoSettingsRepository) DeleteByShop(ctx context.Context, shop string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"shop": shop})
	if err != nil {
		return domain.NewPersistenceError("settings.delete", fmt.Errorf("failed to delete settings: %w", err))
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("settings.delete", fmt.Errorf("settings for shop %s not found", shop))
	}
	return nil
}
