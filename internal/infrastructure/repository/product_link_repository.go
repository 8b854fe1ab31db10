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

const productLinksCollection = "products"

// MongoProductLinkRepository implements ProductLinkRepository using MongoDB
type MongoProductLinkRepository struct {
	collection *mongo.Collection
}

// NewMongoProductLinkRepository creates a new MongoDB product link repository
func NewMongoProductLinkRepository(db *mongo.Database) ports.ProductLinkRepository {
	return &MongoProductLinkRepository{
		collection: db.Collection(productLinksCollection),
	}
}

// GetByShop retrieves the product link of a shop
func (r *MongoProductLinkRepository) GetByShop(ctx context.Context, shop string) (*domain.ProductLink, error) {
	var doc entity.MongoProductLinkDoc
	err := r.collection.FindOne(ctx, bson.M{"shop": shop}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("product_link.get", fmt.Errorf("failed to get product link: %w", err))
	}

	return doc.ToDomain(), nil
}

// Create stores a new link. The unique index on shop rejects a second link.
func (r *MongoProductLinkRepository) Create(ctx context.Context, link *domain.ProductLink) error {
	doc := entity.MongoProductLinkDocFromDomain(link)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewPersistenceError("product_link.create", fmt.Errorf("product link for shop %s: %w", link.Shop, domain.ErrAlreadyExists))
		}
		return domain.NewPersistenceError("product_link.create", fmt.Errorf("failed to create product link: %w", err))
	}

	link.ID = doc.ID.Hex()
	link.CreatedAt = doc.CreatedAt
	return nil
}

// DeleteByShop deletes the product link of a shop
func (r *MongoProductLinkRepository) DeleteByShop(ctx context.Context, shop string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"shop": shop})
	if err != nil {
		return domain.NewPersistenceError("product_link.delete", fmt.Errorf("failed to delete product link: %w", err))
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("product_link.delete", fmt.Errorf("product link for shop %s not found", shop))
	}
	return nil
}
