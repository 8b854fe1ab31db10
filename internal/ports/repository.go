package ports

import (
	"context"

	"giftwrap-admin-layer/internal/domain"
)

// SettingsRepository defines persistence for the per-shop settings record.
// Lookups return (nil, nil) when no record exists.
type SettingsRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.Settings, error)
	Create(ctx context.Context, settings *domain.Settings) error
	// Update overwrites the record identified by settings.ID
	Update(ctx context.Context, settings *domain.Settings) error
	DeleteByShop(ctx context.Context, shop string) error
}

// ProductLinkRepository defines persistence for the shop -> remote product mapping.
// Links are immutable, so there is no update.
type ProductLinkRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.ProductLink, error)
	Create(ctx context.Context, link *domain.ProductLink) error
	DeleteByShop(ctx context.Context, shop string) error
}

// ShopRepository reads the offline sessions written by the app's auth layer
type ShopRepository interface {
	GetShop(ctx context.Context, domain string) (*domain.Shop, error)
	SaveShop(ctx context.Context, shop *domain.Shop) error
	DeleteShop(ctx context.Context, domain string) error
}
