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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const shopsCollection = "shops"

// MongoShopRepository implements ShopRepository using MongoDB
type MongoShopRepository struct {
	collection *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB shop repository
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	return &MongoShopRepository{
		collection: db.Collection(shopsCollection),
	}
}

// SaveShop saves or updates a shop session
func (r *MongoShopRepository) SaveShop(ctx context.Context, shop *domain.Shop) error {
	doc := entity.MongoShopDocFromDomain(shop)
	doc.UpdatedAt = time.Now()
	if doc.InstalledAt.IsZero() {
		doc.InstalledAt = doc.UpdatedAt
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"domain": shop.Domain}
	update := bson.M{"$set": doc}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return domain.NewPersistenceError("shop.save", fmt.Errorf("failed to save shop: %w", err))
	}

	return nil
}

// GetShop retrieves a shop by domain
func (r *MongoShopRepository) GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	var doc entity.MongoShopDoc
	err := r.collection.FindOne(ctx, bson.M{"domain": shopDomain}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("shop.get", fmt.Errorf("failed to get shop: %w", err))
	}

	return doc.ToDomain(), nil
}

// DeleteShop removes a shop session. Deleting an unknown shop is not an error.
func (r *MongoShopRepository) DeleteShop(ctx context.Context, shopDomain string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"domain": shopDomain}); err != nil {
		return domain.NewPersistenceError("shop.delete", fmt.Errorf("failed to delete shop: %w", err))
	}
	return nil
}
