package entity

import (
	"time"

	"giftwrap-admin-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSettingsDoc represents a shop's gift wrap settings in MongoDB
type MongoSettingsDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Shop          string             `bson:"shop"`
	IsEnabled     bool               `bson:"isEnabled"`
	DisplayOption string             `bson:"displayOption"`
	ProductTitle  string             `bson:"productTitle"`
	GiftTitle     string             `bson:"giftTitle"`
	Price         int64              `bson:"price"`
	EnableNotes   bool               `bson:"enableNotes"`
	IsIcon        bool               `bson:"isIcon"`
	Icon          string             `bson:"icon"`
	IsImage       bool               `bson:"isImage"`
	Image         string             `bson:"image"`
	CustomCSS     string             `bson:"customCss"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSettingsDoc) ToDomain() *domain.Settings {
	return &domain.Settings{
		ID:            d.ID.Hex(),
		Shop:          d.Shop,
		IsEnabled:     d.IsEnabled,
		DisplayOption: domain.DisplayOption(d.DisplayOption),
		ProductTitle:  d.ProductTitle,
		GiftTitle:     d.GiftTitle,
		Price:         d.Price,
		EnableNotes:   d.EnableNotes,
		IsIcon:        d.IsIcon,
		Icon:          d.Icon,
		IsImage:       d.IsImage,
		Image:         d.Image,
		CustomCSS:     d.CustomCSS,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// MongoSettingsDocFromDomain converts a domain entity to a MongoDB document
func MongoSettingsDocFromDomain(s *domain.Settings) *MongoSettingsDoc {
	doc := &MongoSettingsDoc{
		Shop:          s.Shop,
		IsEnabled:     s.IsEnabled,
		DisplayOption: string(s.DisplayOption),
		ProductTitle:  s.ProductTitle,
		GiftTitle:     s.GiftTitle,
		Price:         s.Price,
		EnableNotes:   s.EnableNotes,
		IsIcon:        s.IsIcon,
		Icon:          s.Icon,
		IsImage:       s.IsImage,
		Image:         s.Image,
		CustomCSS:     s.CustomCSS,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}

	if s.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(s.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
