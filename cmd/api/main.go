package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"giftwrap-admin-layer/internal/application"
	"giftwrap-admin-layer/internal/application/webhook_handlers"
	"giftwrap-admin-layer/internal/config"
	"giftwrap-admin-layer/internal/infrastructure/api"
	"giftwrap-admin-layer/internal/infrastructure/cache"
	"giftwrap-admin-layer/internal/infrastructure/metrics"
	"giftwrap-admin-layer/internal/infrastructure/repository"
	shopifyinfra "giftwrap-admin-layer/internal/infrastructure/shopify"
	"giftwrap-admin-layer/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, envLoaded := config.Load()
	if !envLoaded {
		logger.Warn().Msg(".env file not found, using environment")
	}
	logger = logger.Level(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDatabase)
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure MongoDB indexes")
	}
	cancel()

	// Initialize repositories
	settingsRepo := repository.NewMongoSettingsRepository(db)
	linkRepo := repository.NewMongoProductLinkRepository(db)
	shopRepo := repository.NewMongoShopRepository(db)

	// Storefront cache
	var viewCache ports.GiftWrapCache = cache.NoopGiftWrapCache{}
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("Redis not reachable, cache reads will fall back to MongoDB")
		}
		viewCache = cache.NewRedisGiftWrapCache(redisClient, cfg.GiftWrapCacheTTL)
	} else {
		logger.Info().Msg("REDIS_URL not set, storefront cache disabled")
	}

	collector := metrics.NewCollector()

	clientProvider := shopifyinfra.NewClientProvider(shopifyinfra.ProviderConfig{
		APIKey:            cfg.ShopifyAPIKey,
		APISecret:         cfg.ShopifyAPISecret,
		APIVersion:        cfg.ShopifyAPIVersion,
		StorefrontChannel: cfg.ShopifyStorefrontChannel,
		CallTimeout:       cfg.ShopifyCallTimeout,
		MaxRetries:        cfg.ShopifyMaxRetries,
	}, collector, logger)

	// Initialize application services
	settingsService := application.NewSettingsService(settingsRepo, linkRepo, viewCache, logger)
	provisioningService := application.NewProvisioningService(linkRepo, collector, logger, cfg.GiftWrapProductTitle)
	syncService := application.NewSyncService(collector, logger)
	giftWrapService := application.NewGiftWrapService(settingsService, linkRepo, provisioningService, syncService, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductDeleteHandler(linkRepo, viewCache, logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(shopRepo, viewCache, logger))

	handler := api.NewHandler(api.Dependencies{
		Settings:   settingsService,
		GiftWrap:   giftWrapService,
		Clients:    clientProvider,
		Shops:      shopRepo,
		Sessions:   shopifyinfra.NewSessionTokenVerifier(cfg.ShopifyAPIKey, cfg.ShopifyAPISecret),
		Verifier:   shopifyinfra.NewWebhookVerifier(cfg.ShopifyAPISecret),
		Dispatcher: webhookDispatcher,
		Metrics:    collector.Handler(),
	}, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerFile:    "./docs/swagger.json",
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("API server stopped with error")
		return
	}
	logger.Info().Msg("API server stopped")
}
