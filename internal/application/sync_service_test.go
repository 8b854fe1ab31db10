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

func testLink() *domain.ProductLink {
	return &domain.ProductLink{ID: "link-1", Shop: testShop, ProductID: testProductID, VariantID: testVariantID}
}

func TestSyncTitleOnly(t *testing.T) {
	catalog := newFakeCatalog()
	m := &fakeMetrics{}

	result, err := NewSyncService(m, zerolog.Nop()).Sync(context.Background(), catalog, testLink(), SyncRequest{Title: " Luxury Wrap "})

	require.NoError(t, err)
	assert.Equal(t, "Luxury Wrap", catalog.updatedTitle)
	assert.Equal(t, "Luxury Wrap", result.Product.Title)
	assert.Nil(t, result.Variant)
	assert.Equal(t, 0, catalog.count("variant"))
	assert.Equal(t, 0, catalog.count("price"))
	assert.Equal(t, []string{"sync/success"}, m.recorded())
}

func TestSyncTitleAndPrice(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.currentVariant = "gid://shopify/ProductVariant/3003"

	result, err := NewSyncService(&fakeMetrics{}, zerolog.Nop()).Sync(context.Background(), catalog, testLink(), SyncRequest{
		Title: "Gift Wrap",
		Price: int64Ptr(2550),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, catalog.count("variant"), "variant is re-resolved before pricing")
	assert.Equal(t, "gid://shopify/ProductVariant/3003", catalog.pricedVariant)
	assert.Equal(t, int64(2550), catalog.price)
	require.NotNil(t, result.Variant)
	assert.Equal(t, "25.50", result.Variant.Price)
}

func TestSyncZeroPriceIsSent(t *testing.T) {
	catalog := newFakeCatalog()

	_, err := NewSyncService(&fakeMetrics{}, zerolog.Nop()).Sync(context.Background(), catalog, testLink(), SyncRequest{
		Title: "Gift Wrap",
		Price: int64Ptr(0),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, catalog.count("price"))
	assert.Equal(t, int64(0), catalog.price)
}

func TestSyncPriceFailureIsPartial(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *fakeCatalog)
	}{
		{
			name: "price update rejected",
			setup: func(c *fakeCatalog) {
				c.priceErr = domain.NewFieldValidationError("ProductVariantsBulkUpdate", []domain.FieldError{
					{Field: []string{"variants", "0", "price"}, Message: "must be greater than or equal to 0"},
				})
			},
		},
		{
			name: "variant lookup fails",
			setup: func(c *fakeCatalog) {
				c.variantErr = domain.NewTransportError("GetProductVariants", errors.New("503 Service Unavailable"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			tt.setup(catalog)
			m := &fakeMetrics{}

			result, err := NewSyncService(m, zerolog.Nop()).Sync(context.Background(), catalog, testLink(), SyncRequest{
				Title: "Gift Wrap",
				Price: int64Ptr(1000),
			})

			require.Error(t, err)
			assert.Nil(t, result)
			var derr *domain.Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, domain.KindPartialSync, derr.Kind)
			assert.Equal(t, []string{"product.title"}, derr.Completed)
			assert.Equal(t, 1, catalog.count("title"))
			assert.Equal(t, []string{"sync/partial_sync"}, m.recorded())
		})
	}
}

func TestSyncTitleFieldErrorsPropagate(t *testing.T) {
	fields := []domain.FieldError{{Field: []string{"title"}, Message: "Title is too long"}}
	catalog := newFakeCatalog()
	catalog.titleErr = domain.NewFieldValidationError("ProductUpdate", fields)

	_, err := NewSyncService(&fakeMetrics{}, zerolog.Nop()).Sync(context.Background(), catalog, testLink(), SyncRequest{
		Title: "Gift Wrap",
		Price: int64Ptr(1000),
	})

	assert.Equal(t, domain.KindFieldValidation, domain.KindOf(err))
	assert.Equal(t, fields, domain.FieldErrorsOf(err))
	assert.Equal(t, 0, catalog.count("price"))
}

func TestSyncRejectsMissingInputs(t *testing.T) {
	svc := NewSyncService(&fakeMetrics{}, zerolog.Nop())
	catalog := newFakeCatalog()

	_, err := svc.Sync(context.Background(), catalog, testLink(), SyncRequest{Title: "   "})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = svc.Sync(context.Background(), catalog, nil, SyncRequest{Title: "Gift Wrap"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.ErrorIs(t, err, domain.ErrProductNotLinked)

	assert.Equal(t, 0, catalog.count("title"))
}
