package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

const (
	// DefaultStorefrontChannel is the publication name of the online storefront
	DefaultStorefrontChannel = "Online Store"
	DefaultCallTimeout       = 10 * time.Second

	publicationsPageSize = 25
)

// graphQLService is the part of go-shopify's GraphQL service the catalog client needs
type graphQLService interface {
	Query(ctx context.Context, query string, vars, resp interface{}) error
}

// CallObserver receives one observation per remote catalog operation
type CallObserver interface {
	ObserveRemoteCall(operation string, result string, duration time.Duration)
}

// CatalogOptions configures a CatalogClient
type CatalogOptions struct {
	StorefrontChannel string
	CallTimeout       time.Duration
	Observer          CallObserver
}

// CatalogClient implements ports.CatalogClient over the Admin GraphQL API
type CatalogClient struct {
	gql         graphQLService
	channelName string
	timeout     time.Duration
	observer    CallObserver
	logger      zerolog.Logger
}

var _ ports.CatalogClient = (*CatalogClient)(nil)

// NewCatalogClient creates a catalog client on top of a GraphQL service
func NewCatalogClient(gql graphQLService, opts CatalogOptions, logger zerolog.Logger) *CatalogClient {
	if opts.StorefrontChannel == "" {
		opts.StorefrontChannel = DefaultStorefrontChannel
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	return &CatalogClient{
		gql:         gql,
		channelName: opts.StorefrontChannel,
		timeout:     opts.CallTimeout,
		observer:    opts.Observer,
		logger:      logger,
	}
}

// CreateProduct creates a product with the given title and status
func (c *CatalogClient) CreateProduct(ctx context.Context, title string, status domain.ProductStatus) (_ *domain.Product, err error) {
	op := productCreateMutation.name
	defer c.observe(op, time.Now(), &err)

	vars := map[string]interface{}{
		"product": map[string]interface{}{
			"title":  title,
			"status": string(status),
		},
	}

	var data productCreateData
	if err := c.query(ctx, productCreateMutation, vars, &data); err != nil {
		return nil, err
	}
	if len(data.ProductCreate.UserErrors) > 0 {
		return nil, domain.NewFieldValidationError(op, toFieldErrors(data.ProductCreate.UserErrors))
	}
	if data.ProductCreate.Product == nil || data.ProductCreate.Product.ID == "" {
		return nil, domain.NewNotFoundError(op, errors.New("product creation returned no product ID"))
	}

	return data.ProductCreate.Product.toDomain(), nil
}

// PublishToStorefront publishes a product to the storefront sales channel
func (c *CatalogClient) PublishToStorefront(ctx context.Context, productID string) (err error) {
	op := publishablePublishMutation.name
	defer c.observe(op, time.Now(), &err)

	publication, err := c.findStorefrontPublication(ctx)
	if err != nil {
		return err
	}

	vars := map[string]interface{}{
		"id": productID,
		"input": []map[string]interface{}{
			{"publicationId": publication.ID},
		},
	}

	var data publishablePublishData
	if err := c.query(ctx, publishablePublishMutation, vars, &data); err != nil {
		return err
	}
	if len(data.PublishablePublish.UserErrors) > 0 {
		return domain.NewFieldValidationError(op, toFieldErrors(data.PublishablePublish.UserErrors))
	}

	c.logger.Debug().
		Str("productId", productID).
		Str("publicationId", publication.ID).
		Msg("Product published to storefront")
	return nil
}

// findStorefrontPublication enumerates publications and picks the storefront channel by name
func (c *CatalogClient) findStorefrontPublication(ctx context.Context) (*domain.Publication, error) {
	var data publicationsData
	vars := map[string]interface{}{"first": publicationsPageSize}
	if err := c.query(ctx, publicationsQuery, vars, &data); err != nil {
		return nil, err
	}

	for _, edge := range data.Publications.Edges {
		if edge.Node.Name == c.channelName {
			publication := edge.Node
			return &publication, nil
		}
	}

	return nil, domain.NewNotFoundError(publicationsQuery.name, fmt.Errorf("%q: %w", c.channelName, domain.ErrChannelNotFound))
}

// GetFirstVariant returns the first (default) variant of a product
func (c *CatalogClient) GetFirstVariant(ctx context.Context, productID string) (_ *domain.Variant, err error) {
	op := productVariantsQuery.name
	defer c.observe(op, time.Now(), &err)

	var data productVariantsData
	if err := c.query(ctx, productVariantsQuery, map[string]interface{}{"id": productID}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.NewNotFoundError(op, fmt.Errorf("product %s not found", productID))
	}
	if len(data.Product.Variants.Edges) == 0 || data.Product.Variants.Edges[0].Node.ID == "" {
		return nil, domain.NewNotFoundError(op, fmt.Errorf("no variant found for product %s", productID))
	}

	return data.Product.Variants.Edges[0].Node.toDomain(), nil
}

// UpdateProductTitle renames a product
func (c *CatalogClient) UpdateProductTitle(ctx context.Context, productID string, title string) (_ *domain.Product, err error) {
	op := productUpdateMutation.name
	defer c.observe(op, time.Now(), &err)

	vars := map[string]interface{}{
		"product": map[string]interface{}{
			"id":    productID,
			"title": title,
		},
	}

	var data productUpdateData
	if err := c.query(ctx, productUpdateMutation, vars, &data); err != nil {
		return nil, err
	}
	if len(data.ProductUpdate.UserErrors) > 0 {
		return nil, domain.NewFieldValidationError(op, toFieldErrors(data.ProductUpdate.UserErrors))
	}
	if data.ProductUpdate.Product == nil {
		return nil, domain.NewNotFoundError(op, fmt.Errorf("product %s not found", productID))
	}

	return data.ProductUpdate.Product.toDomain(), nil
}

// UpdateVariantPrice sets a variant's price from minor currency units
func (c *CatalogClient) UpdateVariantPrice(ctx context.Context, productID string, variantID string, price int64) (_ *domain.Variant, err error) {
	op := productVariantsBulkUpdateMutation.name
	defer c.observe(op, time.Now(), &err)

	vars := map[string]interface{}{
		"productId": productID,
		"variants": []map[string]interface{}{
			{"id": variantID, "price": domain.FormatMinorUnits(price)},
		},
	}

	var data productVariantsBulkUpdateData
	if err := c.query(ctx, productVariantsBulkUpdateMutation, vars, &data); err != nil {
		return nil, err
	}
	if len(data.ProductVariantsBulkUpdate.UserErrors) > 0 {
		return nil, domain.NewFieldValidationError(op, toFieldErrors(data.ProductVariantsBulkUpdate.UserErrors))
	}
	if len(data.ProductVariantsBulkUpdate.ProductVariants) == 0 {
		return nil, domain.NewNotFoundError(op, fmt.Errorf("variant %s not found", variantID))
	}

	return data.ProductVariantsBulkUpdate.ProductVariants[0].toDomain(), nil
}

// DeleteProduct deletes a product and returns the deleted ID
func (c *CatalogClient) DeleteProduct(ctx context.Context, productID string) (_ string, err error) {
	op := productDeleteMutation.name
	defer c.observe(op, time.Now(), &err)

	vars := map[string]interface{}{
		"input": map[string]interface{}{"id": productID},
	}

	var data productDeleteData
	if err := c.query(ctx, productDeleteMutation, vars, &data); err != nil {
		return "", err
	}
	if len(data.ProductDelete.UserErrors) > 0 {
		fields := toFieldErrors(data.ProductDelete.UserErrors)
		if missingProduct(fields) {
			return "", domain.NewNotFoundError(op, domain.NewFieldValidationError(op, fields))
		}
		return "", domain.NewFieldValidationError(op, fields)
	}
	if data.ProductDelete.DeletedProductID == nil {
		return "", domain.NewNotFoundError(op, fmt.Errorf("product %s not found", productID))
	}

	return *data.ProductDelete.DeletedProductID, nil
}

// GetProduct retrieves a product by ID
func (c *CatalogClient) GetProduct(ctx context.Context, productID string) (_ *domain.Product, err error) {
	op := productQuery.name
	defer c.observe(op, time.Now(), &err)

	var data productData
	if err := c.query(ctx, productQuery, map[string]interface{}{"id": productID}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.NewNotFoundError(op, fmt.Errorf("product %s not found", productID))
	}

	return data.Product.toDomain(), nil
}

// query runs one GraphQL exchange under the call timeout. Any error returned by the
// GraphQL service, including top-level GraphQL errors, is a transport failure.
func (c *CatalogClient) query(ctx context.Context, doc document, vars map[string]interface{}, resp interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.gql.Query(ctx, doc.query, vars, resp)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("request timed out after %s: %w", c.timeout, err)
	}
	return domain.NewTransportError(doc.name, err)
}

func (c *CatalogClient) observe(op string, start time.Time, errp *error) {
	duration := time.Since(start)
	result := "ok"

	if err := *errp; err != nil {
		result = domain.KindOf(err).String()
		event := c.logger.Warn().
			Err(err).
			Str("operation", op).
			Str("kind", result).
			Dur("duration", duration)
		if status := responseStatus(err); status != 0 {
			event = event.Int("status", status)
		}
		event.Msg("Remote catalog call failed")
	} else {
		c.logger.Debug().
			Str("operation", op).
			Dur("duration", duration).
			Msg("Remote catalog call succeeded")
	}

	if c.observer != nil {
		c.observer.ObserveRemoteCall(op, result, duration)
	}
}

// missingProduct reports whether productDelete rejected the id because the product is gone
func missingProduct(fields []domain.FieldError) bool {
	for _, f := range fields {
		if len(f.Field) > 0 && f.Field[len(f.Field)-1] == "id" && strings.Contains(strings.ToLower(f.Message), "does not exist") {
			return true
		}
	}
	return false
}

// responseStatus extracts the HTTP status carried by a go-shopify response error
func responseStatus(err error) int {
	var respErr goshopify.ResponseError
	if errors.As(err, &respErr) {
		return respErr.Status
	}
	var rateErr goshopify.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Status
	}
	return 0
}
