package application

import (
	"context"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// SaveResult reports what a settings save did. Settings is set whenever the local save
// succeeded, even if the remote part failed afterwards.
type SaveResult struct {
	Settings    *domain.Settings
	Provisioned *ProvisionResult
	Sync        *SyncResult
}

// ProductState is the remote view of the linked gift wrap product. Price is the default
// variant's price in minor units.
type ProductState struct {
	Link    *domain.ProductLink `json:"link"`
	Product *domain.Product     `json:"product"`
	Variant *domain.Variant     `json:"variant"`
	Price   *int64              `json:"price"`
}

// GiftWrapService runs the admin use cases on top of the settings store and the workflows
type GiftWrapService struct {
	settings     *SettingsService
	linkRepo     ports.ProductLinkRepository
	provisioning *ProvisioningService
	sync         *SyncService
	logger       zerolog.Logger
}

// NewGiftWrapService creates a new gift wrap service
func NewGiftWrapService(
	settings *SettingsService,
	linkRepo ports.ProductLinkRepository,
	provisioning *ProvisioningService,
	sync *SyncService,
	logger zerolog.Logger,
) *GiftWrapService {
	return &GiftWrapService{
		settings:     settings,
		linkRepo:     linkRepo,
		provisioning: provisioning,
		sync:         sync,
		logger:       logger,
	}
}

// SaveSettings stores the settings, provisions the product on first use and syncs the
// title and price to it
func (s *GiftWrapService) SaveSettings(ctx context.Context, shop string, client ports.CatalogClient, input domain.SettingsInput) (*SaveResult, error) {
	settings, err := s.settings.Upsert(ctx, shop, input)
	if err != nil {
		return nil, err
	}
	result := &SaveResult{Settings: settings}

	link, err := s.linkRepo.GetByShop(ctx, shop)
	if err != nil {
		return result, err
	}

	if link == nil {
		provisioned, err := s.provisioning.Provision(ctx, shop, client)
		if err != nil {
			return result, err
		}
		result.Provisioned = provisioned
		link = provisioned.Link
		s.settings.InvalidateView(ctx, shop)
	}

	synced, err := s.sync.Sync(ctx, client, link, SyncRequest{
		Title: settings.ProductTitle,
		Price: input.Price,
	})
	if err != nil {
		return result, err
	}
	result.Sync = synced
	return result, nil
}

// Provision creates and links the gift wrap product unless the shop is already linked
func (s *GiftWrapService) Provision(ctx context.Context, shop string, client ports.CatalogClient) (*ProvisionResult, error) {
	link, err := s.linkRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if link != nil {
		return &ProvisionResult{Link: link, AlreadyLinked: true}, nil
	}

	result, err := s.provisioning.Provision(ctx, shop, client)
	if err != nil {
		return nil, err
	}
	s.settings.InvalidateView(ctx, shop)
	return result, nil
}

// Deprovision deletes the remote product and the link. A product already deleted remotely
// is still unlinked.
func (s *GiftWrapService) Deprovision(ctx context.Context, shop string, client ports.CatalogClient) error {
	link, err := s.linkRepo.GetByShop(ctx, shop)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.NewNotFoundError("deprovision", domain.ErrProductNotLinked)
	}

	if _, err := client.DeleteProduct(ctx, link.ProductID); err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return err
		}
		s.logger.Warn().Err(err).Str("shop", shop).Str("productId", link.ProductID).Msg("Gift wrap product already gone remotely")
	}

	if err := s.linkRepo.DeleteByShop(ctx, shop); err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}
	s.settings.InvalidateView(ctx, shop)

	s.logger.Info().Str("shop", shop).Str("productId", link.ProductID).Msg("Gift wrap product deprovisioned")
	return nil
}

// ProductStatus returns the link together with the current remote product
func (s *GiftWrapService) ProductStatus(ctx context.Context, shop string, client ports.CatalogClient) (*ProductState, error) {
	link, err := s.linkRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.NewNotFoundError("product.status", domain.ErrProductNotLinked)
	}

	product, err := client.GetProduct(ctx, link.ProductID)
	if err != nil {
		return nil, err
	}
	state := &ProductState{Link: link, Product: product}

	variant, err := client.GetFirstVariant(ctx, link.ProductID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return state, nil
		}
		return nil, err
	}
	state.Variant = variant

	price, err := domain.ParseMinorUnits(variant.Price)
	if err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Str("variantId", variant.ID).Msg("Unparseable gift wrap variant price")
		return state, nil
	}
	state.Price = &price
	return state, nil
}
