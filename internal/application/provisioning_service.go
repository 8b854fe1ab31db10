package application

import (
	"context"
	"errors"
	"time"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const workflowProvisioning = "provisioning"

// ProvisionResult describes a finished provisioning run
type ProvisionResult struct {
	// Product is the remote product created by this run
	Product *domain.Product
	// Link is the persisted link; an existing one when AlreadyLinked is set
	Link          *domain.ProductLink
	AlreadyLinked bool
	Published     bool
	// PublishError is the logged, non-fatal storefront publish failure
	PublishError error
}

// ProvisioningService creates the gift wrap product for a shop and records the link
type ProvisioningService struct {
	linkRepo     ports.ProductLinkRepository
	metrics      ports.WorkflowMetrics
	logger       zerolog.Logger
	productTitle string
}

// NewProvisioningService creates a new provisioning service. An empty productTitle falls back
// to domain.DefaultProductTitle.
func NewProvisioningService(
	linkRepo ports.ProductLinkRepository,
	metrics ports.WorkflowMetrics,
	logger zerolog.Logger,
	productTitle string,
) *ProvisioningService {
	if productTitle == "" {
		productTitle = domain.DefaultProductTitle
	}
	return &ProvisioningService{
		linkRepo:     linkRepo,
		metrics:      metrics,
		logger:       logger,
		productTitle: productTitle,
	}
}

// Provision creates an active product, publishes it to the storefront and links its first
// variant to the shop. A publish failure never fails the run. An existing link short-circuits
// the run without a variant fetch or write. Once the product exists, any later failure is
// KindUnlinkedProduct. Remote calls run one at a time: the go-shopify client behind a
// CatalogClient must not be shared across goroutines.
func (s *ProvisioningService) Provision(ctx context.Context, shop string, client ports.CatalogClient) (result *ProvisionResult, err error) {
	if shop == "" {
		return nil, domain.NewInvalidInputError("provision", "missing shop")
	}

	logger := s.logger.With().Str("shop", shop).Str("runId", uuid.NewString()).Logger()
	start := time.Now()
	defer func() {
		outcome := "success"
		switch {
		case err != nil:
			outcome = errorKindLabel(err)
		case result.AlreadyLinked:
			outcome = "already_linked"
		}
		s.metrics.RecordWorkflow(workflowProvisioning, outcome)
		logger.Info().Str("outcome", outcome).Dur("duration", time.Since(start)).Msg("Provisioning finished")
	}()

	product, err := client.CreateProduct(ctx, s.productTitle, domain.ProductStatusActive)
	if err != nil {
		logger.Error().Err(err).Str("kind", domain.KindOf(err).String()).Msg("Failed to create gift wrap product")
		return nil, err
	}
	logger.Info().Str("productId", product.ID).Msg("Gift wrap product created")

	result = &ProvisionResult{Product: product}

	if err := client.PublishToStorefront(ctx, product.ID); err != nil {
		logger.Warn().Err(err).Str("productId", product.ID).Msg("Failed to publish gift wrap product, continuing")
		result.PublishError = err
	} else {
		result.Published = true
	}

	link, existed, err := s.linkFirstVariant(ctx, shop, product.ID, client)
	if err != nil {
		err = domain.NewUnlinkedProductError("provision", product.ID, err)
		logger.Error().Err(err).Str("productId", product.ID).Msg("Gift wrap product exists remotely but is not linked")
		return nil, err
	}
	result.Link = link
	result.AlreadyLinked = existed

	if result.AlreadyLinked {
		logger.Warn().
			Str("productId", product.ID).
			Str("linkedProductId", result.Link.ProductID).
			Msg("Shop already linked, created product left unlinked")
	}
	return result, nil
}

// linkFirstVariant returns the existing link, or fetches the first variant and persists a new one.
// A duplicate-key failure means a concurrent run linked first; its link is returned instead.
func (s *ProvisioningService) linkFirstVariant(ctx context.Context, shop, productID string, client ports.CatalogClient) (*domain.ProductLink, bool, error) {
	existing, err := s.linkRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	variant, err := client.GetFirstVariant(ctx, productID)
	if err != nil {
		return nil, false, err
	}

	link := &domain.ProductLink{
		Shop:      shop,
		ProductID: productID,
		VariantID: variant.ID,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			winner, getErr := s.linkRepo.GetByShop(ctx, shop)
			if getErr == nil && winner != nil {
				return winner, true, nil
			}
		}
		return nil, false, err
	}
	return link, false, nil
}
