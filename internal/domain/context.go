package domain

import "context"

type contextKey string

const (
	shopDomainKey contextKey = "shop_domain"
	shopKey       contextKey = "shop"
)

// WithShop stores the authenticated shop (tenant) in the context
func WithShop(ctx context.Context, shop *Shop) context.Context {
	ctx = context.WithValue(ctx, shopKey, shop)
	return context.WithValue(ctx, shopDomainKey, shop.Domain)
}

// GetShopFromContext returns the authenticated shop, or nil
func GetShopFromContext(ctx context.Context) *Shop {
	shop, _ := ctx.Value(shopKey).(*Shop)
	return shop
}

// GetShopDomainFromContext returns the tenant key, or an empty string
func GetShopDomainFromContext(ctx context.Context) string {
	domain, _ := ctx.Value(shopDomainKey).(string)
	return domain
}
