package ports

import (
	"context"

	"giftwrap-admin-layer/internal/domain"
)

// CatalogClient defines the remote catalog operations used by the workflows.
// Every method issues remote calls bounded by a timeout and returns *domain.Error
// tagged as transport, field validation or not found.
type CatalogClient interface {
	CreateProduct(ctx context.Context, title string, status domain.ProductStatus) (*domain.Product, error)
	// PublishToStorefront looks up the storefront publication by name and publishes the product to it
	PublishToStorefront(ctx context.Context, productID string) error
	GetFirstVariant(ctx context.Context, productID string) (*domain.Variant, error)
	UpdateProductTitle(ctx context.Context, productID string, title string) (*domain.Product, error)
	// UpdateVariantPrice sets the price of variantID, given in minor currency units
	UpdateVariantPrice(ctx context.Context, productID string, variantID string, price int64) (*domain.Variant, error)
	DeleteProduct(ctx context.Context, productID string) (string, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// CatalogClientProvider builds an authenticated CatalogClient for an installed shop
type CatalogClientProvider interface {
	ClientFor(shop *domain.Shop) (CatalogClient, error)
}
