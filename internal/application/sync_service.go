package application

import (
	"context"
	"strings"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

const (
	workflowSync = "sync"

	stepProductTitle = "product.title"
)

// SyncRequest carries the settings values pushed to the linked product.
// Price is in minor units; nil leaves the variant untouched.
type SyncRequest struct {
	Title string
	Price *int64
}

// SyncResult holds the updated remote records; Variant is nil when no price was sent
type SyncResult struct {
	Product *domain.Product
	Variant *domain.Variant
}

// SyncService pushes saved settings to the already provisioned product
type SyncService struct {
	metrics ports.WorkflowMetrics
	logger  zerolog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(metrics ports.WorkflowMetrics, logger zerolog.Logger) *SyncService {
	return &SyncService{
		metrics: metrics,
		logger:  logger,
	}
}

// Sync updates the product title and, when a price is present, the default variant price.
// A price failure after a successful title update is KindPartialSync.
func (s *SyncService) Sync(ctx context.Context, client ports.CatalogClient, link *domain.ProductLink, req SyncRequest) (result *SyncResult, err error) {
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = errorKindLabel(err)
		}
		s.metrics.RecordWorkflow(workflowSync, outcome)
	}()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.NewInvalidInputError("sync", "title is required")
	}
	if link == nil || link.ProductID == "" {
		return nil, domain.NewNotFoundError("sync", domain.ErrProductNotLinked)
	}

	logger := s.logger.With().Str("shop", link.Shop).Str("productId", link.ProductID).Logger()

	product, err := client.UpdateProductTitle(ctx, link.ProductID, title)
	if err != nil {
		logger.Error().Err(err).Str("kind", domain.KindOf(err).String()).Msg("Failed to update gift wrap product title")
		return nil, err
	}
	result = &SyncResult{Product: product}

	if req.Price == nil {
		logger.Info().Msg("Gift wrap product synced")
		return result, nil
	}

	variant, err := client.GetFirstVariant(ctx, link.ProductID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve gift wrap variant after title update")
		return nil, domain.NewPartialSyncError("sync", []string{stepProductTitle}, err)
	}

	updated, err := client.UpdateVariantPrice(ctx, link.ProductID, variant.ID, *req.Price)
	if err != nil {
		logger.Error().Err(err).Str("variantId", variant.ID).Msg("Failed to update gift wrap price after title update")
		return nil, domain.NewPartialSyncError("sync", []string{stepProductTitle}, err)
	}
	result.Variant = updated

	logger.Info().Str("variantId", updated.ID).Str("price", updated.Price).Msg("Gift wrap product synced")
	return result, nil
}
