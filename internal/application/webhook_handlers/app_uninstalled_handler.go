package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler handles app uninstalled webhook events
type AppUninstalledHandler struct {
	shopRepo ports.ShopRepository
	cache    ports.GiftWrapCache
	logger   zerolog.Logger
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(shopRepo ports.ShopRepository, cache ports.GiftWrapCache, logger zerolog.Logger) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		shopRepo: shopRepo,
		cache:    cache,
		logger:   logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

// Handle drops the shop's access token and cached view. Settings and the product link are
// kept so a reinstall picks up where the merchant left off.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var shopData struct {
			Domain          string `json:"domain"`
			MyshopifyDomain string `json:"myshopify_domain"`
		}
		if err := json.Unmarshal(event.Payload, &shopData); err != nil {
			return fmt.Errorf("failed to parse app uninstalled webhook payload: %w", err)
		}
		shopDomain = shopData.MyshopifyDomain
		if shopDomain == "" {
			shopDomain = shopData.Domain
		}
	}
	if shopDomain == "" {
		return domain.NewInvalidInputError("webhook.app_uninstalled", "shop domain missing")
	}

	if err := h.shopRepo.DeleteShop(ctx, shopDomain); err != nil {
		return err
	}
	if err := h.cache.Invalidate(ctx, shopDomain); err != nil {
		h.logger.Warn().Err(err).Str("shop", shopDomain).Msg("Failed to invalidate gift wrap cache")
	}

	h.logger.Info().Str("shop", shopDomain).Msg("App uninstalled, shop session removed")
	return nil
}
