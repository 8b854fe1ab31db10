package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

const productGIDPrefix = "gid://shopify/Product/"

// ProductDeleteHandler unlinks the gift wrap product when the merchant deletes it in the admin
type ProductDeleteHandler struct {
	linkRepo ports.ProductLinkRepository
	cache    ports.GiftWrapCache
	logger   zerolog.Logger
}

// NewProductDeleteHandler creates a new products/delete webhook handler
func NewProductDeleteHandler(linkRepo ports.ProductLinkRepository, cache ports.GiftWrapCache, logger zerolog.Logger) *ProductDeleteHandler {
	return &ProductDeleteHandler{
		linkRepo: linkRepo,
		cache:    cache,
		logger:   logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductDeleteHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductsDelete
}

// Handle deletes the shop's product link if it points at the deleted product
func (h *ProductDeleteHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}
	if payload.ID == 0 {
		return domain.NewInvalidInputError("webhook.products_delete", "product id missing from payload")
	}

	productID := fmt.Sprintf("%s%d", productGIDPrefix, payload.ID)
	logger := h.logger.With().Str("shop", event.Shop).Str("productId", productID).Logger()

	link, err := h.linkRepo.GetByShop(ctx, event.Shop)
	if err != nil {
		return err
	}
	if link == nil || link.ProductID != productID {
		logger.Debug().Msg("Deleted product is not the gift wrap product")
		return nil
	}

	if err := h.linkRepo.DeleteByShop(ctx, event.Shop); err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}
	if err := h.cache.Invalidate(ctx, event.Shop); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate gift wrap cache")
	}

	logger.Info().Msg("Gift wrap product deleted remotely, link removed")
	return nil
}
