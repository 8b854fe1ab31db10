package application

import (
	"context"
	"errors"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// SettingsService manages the per-shop settings record and the combined storefront view
type SettingsService struct {
	settingsRepo ports.SettingsRepository
	linkRepo     ports.ProductLinkRepository
	cache        ports.GiftWrapCache
	logger       zerolog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingsRepo ports.SettingsRepository,
	linkRepo ports.ProductLinkRepository,
	cache ports.GiftWrapCache,
	logger zerolog.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		linkRepo:     linkRepo,
		cache:        cache,
		logger:       logger,
	}
}

// GetSettings returns the shop's settings, or nil when none were saved yet
func (s *SettingsService) GetSettings(ctx context.Context, shop string) (*domain.Settings, error) {
	if shop == "" {
		return nil, domain.NewInvalidInputError("settings.get", "missing shop")
	}
	return s.settingsRepo.GetByShop(ctx, shop)
}

// Upsert creates the shop's settings on first save and updates them in place afterwards.
// The read-then-write sequence is not atomic; concurrent saves resolve as last write wins.
func (s *SettingsService) Upsert(ctx context.Context, shop string, input domain.SettingsInput) (*domain.Settings, error) {
	if shop == "" {
		return nil, domain.NewInvalidInputError("settings.upsert", "missing shop")
	}
	if err := input.Validate(); err != nil {
		return nil, domain.NewInvalidInputError("settings.upsert", err.Error())
	}

	existing, err := s.settingsRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}

	var settings *domain.Settings
	if existing != nil {
		if err := existing.Update(input); err != nil {
			return nil, domain.NewInvalidInputError("settings.upsert", err.Error())
		}
		if err := s.settingsRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		settings = existing
	} else {
		created, err := domain.NewSettings(shop, input)
		if err != nil {
			return nil, domain.NewInvalidInputError("settings.upsert", err.Error())
		}
		if err := s.settingsRepo.Create(ctx, created); err != nil {
			return nil, err
		}
		settings = created
	}

	s.InvalidateView(ctx, shop)
	s.logger.Info().
		Str("shop", shop).
		Str("settingsId", settings.ID).
		Bool("created", existing == nil).
		Msg("Gift wrap settings saved")
	return settings, nil
}

// Delete removes the shop's settings. Missing settings are not an error.
func (s *SettingsService) Delete(ctx context.Context, shop string) error {
	if err := s.settingsRepo.DeleteByShop(ctx, shop); err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}
	s.InvalidateView(ctx, shop)
	return nil
}

// GetGiftWrapView returns the settings combined with the product link, or nil when the
// shop has no settings yet
func (s *SettingsService) GetGiftWrapView(ctx context.Context, shop string) (*domain.GiftWrapView, error) {
	if shop == "" {
		return nil, domain.NewInvalidInputError("giftwrap.view", "missing shop")
	}

	cacheable := true
	if view, ok, err := s.cache.Get(ctx, shop); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Gift wrap cache read failed, falling back to store")
		cacheable = false
	} else if ok {
		return view, nil
	}

	// read before the store so a save landing in between makes the Set below a no-op
	generation, err := s.cache.Generation(ctx, shop)
	if err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Gift wrap cache generation read failed")
		cacheable = false
	}

	settings, err := s.settingsRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil
	}

	link, err := s.linkRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}

	view := domain.NewGiftWrapView(settings, link)
	if !cacheable {
		return view, nil
	}
	stored, err := s.cache.Set(ctx, shop, generation, view)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to cache gift wrap view")
	case !stored:
		s.logger.Debug().Str("shop", shop).Msg("Gift wrap view changed while loading, not cached")
	}
	return view, nil
}

// InvalidateView drops the cached storefront view; failures are logged only
func (s *SettingsService) InvalidateView(ctx context.Context, shop string) {
	if err := s.cache.Invalidate(ctx, shop); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to invalidate gift wrap cache")
	}
}

// errorKindLabel is the metric/log label of an error
func errorKindLabel(err error) string {
	var e *domain.Error
	if errors.As(err, &e) {
		return e.Kind.String()
	}
	return domain.KindUnknown.String()
}
