package shopify

import (
	"fmt"
	"net/http"
	"time"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// ProviderConfig holds the app credentials and client behavior shared by all shops
type ProviderConfig struct {
	APIKey            string
	APISecret         string
	APIVersion        string
	StorefrontChannel string
	CallTimeout       time.Duration
	MaxRetries        int
	// Transport overrides the HTTP transport of every client; nil uses http.DefaultTransport
	Transport http.RoundTripper
}

// ClientProvider builds per-shop catalog clients from offline sessions
type ClientProvider struct {
	app      goshopify.App
	config   ProviderConfig
	observer CallObserver
	logger   zerolog.Logger
}

var _ ports.CatalogClientProvider = (*ClientProvider)(nil)

// NewClientProvider creates a new client provider
func NewClientProvider(config ProviderConfig, observer CallObserver, logger zerolog.Logger) *ClientProvider {
	if config.CallTimeout <= 0 {
		config.CallTimeout = DefaultCallTimeout
	}
	return &ClientProvider{
		app: goshopify.App{
			ApiKey:    config.APIKey,
			ApiSecret: config.APISecret,
		},
		config:   config,
		observer: observer,
		logger:   logger,
	}
}

// ClientFor returns a catalog client authenticated with the shop's offline access token
func (p *ClientProvider) ClientFor(shop *domain.Shop) (ports.CatalogClient, error) {
	if shop == nil || shop.Domain == "" {
		return nil, fmt.Errorf("shop is required")
	}
	if shop.AccessToken == "" {
		return nil, fmt.Errorf("shop has no access token: %s", shop.Domain)
	}

	logger := p.logger.With().Str("shop", shop.Domain).Logger()

	opts := []goshopify.Option{
		goshopify.WithHTTPClient(&http.Client{Timeout: p.config.CallTimeout, Transport: p.config.Transport}),
		goshopify.WithLogger(&leveledLogger{logger: logger}),
	}
	if p.config.APIVersion != "" {
		opts = append(opts, goshopify.WithVersion(p.config.APIVersion))
	}
	if p.config.MaxRetries > 0 {
		opts = append(opts, goshopify.WithRetry(p.config.MaxRetries))
	}

	client, err := goshopify.NewClient(p.app, shop.Domain, shop.AccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return NewCatalogClient(client.GraphQL, CatalogOptions{
		StorefrontChannel: p.config.StorefrontChannel,
		CallTimeout:       p.config.CallTimeout,
		Observer:          p.observer,
	}, logger), nil
}

// leveledLogger adapts zerolog to go-shopify's leveled logger interface
type leveledLogger struct {
	logger zerolog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}
