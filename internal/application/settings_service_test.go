package application

import (
	"context"
	"errors"
	"testing"

	"giftwrap-admin-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsFixture struct {
	settings *fakeSettingsRepo
	links    *fakeLinkRepo
	cache    *fakeCache
	svc      *SettingsService
}

func newSettingsFixture() *settingsFixture {
	f := &settingsFixture{
		settings: newFakeSettingsRepo(),
		links:    newFakeLinkRepo(),
		cache:    newFakeCache(),
	}
	f.svc = NewSettingsService(f.settings, f.links, f.cache, zerolog.Nop())
	return f
}

func TestUpsertCreatesThenUpdatesInPlace(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	created, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{IsEnabled: true, Price: int64Ptr(1500)})
	require.NoError(t, err)
	assert.Equal(t, 1, f.settings.creates)
	assert.Equal(t, domain.DefaultProductTitle, created.ProductTitle)
	assert.Equal(t, domain.DisplayBoth, created.DisplayOption)

	updated, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{
		IsEnabled:     false,
		DisplayOption: domain.DisplayCart,
		ProductTitle:  "Premium Wrap",
		Price:         int64Ptr(2500),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 1, f.settings.creates)
	assert.Equal(t, 1, f.settings.updates)
	assert.Len(t, f.settings.settings, 1)

	stored, err := f.svc.GetSettings(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.Equal(t, "Premium Wrap", stored.ProductTitle)
	assert.Equal(t, int64(2500), stored.Price)
	assert.Equal(t, domain.DisplayCart, stored.DisplayOption)
	assert.False(t, stored.IsEnabled)
}

func TestUpsertRejectsInvalidInput(t *testing.T) {
	f := newSettingsFixture()

	_, err := f.svc.Upsert(context.Background(), testShop, domain.SettingsInput{DisplayOption: "sidebar"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = f.svc.Upsert(context.Background(), testShop, domain.SettingsInput{Price: int64Ptr(-1)})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = f.svc.Upsert(context.Background(), "", domain.SettingsInput{})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	assert.Empty(t, f.settings.settings)
}

func TestGiftWrapViewRoundTrip(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	saved, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{
		IsEnabled:     true,
		DisplayOption: domain.DisplayProduct,
		ProductTitle:  "Gift Wrap Deluxe",
		GiftTitle:     "Wrap it!",
		Price:         int64Ptr(999),
		EnableNotes:   boolPtr(false),
		IsImage:       true,
		Image:         "https://cdn.example.com/wrap.png",
		CustomCSS:     ".gift{color:red}",
	})
	require.NoError(t, err)

	view, err := f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, *saved, *view.Settings)
	assert.Nil(t, view.Product)

	f.links.seed(testLink())
	f.svc.InvalidateView(ctx, testShop)

	view, err = f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, *saved, *view.Settings)
	require.NotNil(t, view.Product)
	assert.Equal(t, testProductID, view.Product.ProductID)
	assert.Equal(t, testVariantID, view.Product.VariantID)
}

func TestGiftWrapViewEdgeCases(t *testing.T) {
	f := newSettingsFixture()

	_, err := f.svc.GetGiftWrapView(context.Background(), "")
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Contains(t, err.Error(), "missing shop")

	view, err := f.svc.GetGiftWrapView(context.Background(), testShop)
	require.NoError(t, err)
	assert.Nil(t, view)
	assert.Equal(t, 0, f.cache.sets)
}

func TestGiftWrapViewIsCachedAndInvalidatedOnSave(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	_, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{ProductTitle: "First"})
	require.NoError(t, err)

	_, err = f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	readsAfterFirst := f.settings.gets

	cached, err := f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, readsAfterFirst, f.settings.gets, "second read is served from cache")
	assert.Equal(t, "First", cached.ProductTitle)

	_, err = f.svc.Upsert(ctx, testShop, domain.SettingsInput{ProductTitle: "Second"})
	require.NoError(t, err)

	fresh, err := f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, "Second", fresh.ProductTitle)
}

func TestGiftWrapViewLoadedBeforeSaveIsNotCached(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	_, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{ProductTitle: "First"})
	require.NoError(t, err)

	f.settings.afterGet = func() {
		_, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{ProductTitle: "Second"})
		require.NoError(t, err)
	}

	stale, err := f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, "First", stale.ProductTitle)
	assert.Equal(t, 0, f.cache.sets)
	assert.Empty(t, f.cache.views)

	fresh, err := f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, "Second", fresh.ProductTitle)
	assert.Equal(t, 1, f.cache.sets)
}

func TestGiftWrapViewBypassesBrokenCache(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	_, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{})
	require.NoError(t, err)

	f.cache.getErr = errors.New("redis: connection refused")

	view, err := f.svc.GetGiftWrapView(ctx, testShop)
	require.NoError(t, err)
	assert.NotNil(t, view)
}

func TestGiftWrapViewPersistenceError(t *testing.T) {
	f := newSettingsFixture()
	f.settings.getErr = domain.NewPersistenceError("settings.get", errors.New("server selection timeout"))

	_, err := f.svc.GetGiftWrapView(context.Background(), testShop)
	assert.True(t, domain.IsKind(err, domain.KindPersistence))
}

func TestDeleteSettingsToleratesMissingRecord(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	assert.NoError(t, f.svc.Delete(ctx, testShop))

	_, err := f.svc.Upsert(ctx, testShop, domain.SettingsInput{})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, testShop))

	settings, err := f.svc.GetSettings(ctx, testShop)
	require.NoError(t, err)
	assert.Nil(t, settings)
}
