package entity

import (
	"time"

	"giftwrap-admin-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoProductLinkDoc represents a shop's gift wrap product link in MongoDB
type MongoProductLinkDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Shop      string             `bson:"shop"`
	ProductID string             `bson:"productId"`
	VariantID string             `bson:"variantId"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoProductLinkDoc) ToDomain() *domain.ProductLink {
	return &domain.ProductLink{
		ID:        d.ID.Hex(),
		Shop:      d.Shop,
		ProductID: d.ProductID,
		VariantID: d.VariantID,
		CreatedAt: d.CreatedAt,
	}
}

// MongoProductLinkDocFromDomain converts a domain entity to a MongoDB document
func MongoProductLinkDocFromDomain(link *domain.ProductLink) *MongoProductLinkDoc {
	doc := &MongoProductLinkDoc{
		Shop:      link.Shop,
		ProductID: link.ProductID,
		VariantID: link.VariantID,
		CreatedAt: link.CreatedAt,
	}

	if link.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(link.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
