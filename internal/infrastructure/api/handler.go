package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"giftwrap-admin-layer/internal/application"
	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/infrastructure/middleware"
	"giftwrap-admin-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const saveFailedMessage = "Something went wrong while saving settings."

// WebhookVerifier authenticates webhook deliveries
type WebhookVerifier interface {
	Verify(r *http.Request) error
}

// Dependencies wires the HTTP layer to the application services
type Dependencies struct {
	Settings   *application.SettingsService
	GiftWrap   *application.GiftWrapService
	Clients    ports.CatalogClientProvider
	Shops      ports.ShopRepository
	Sessions   middleware.SessionVerifier
	Verifier   WebhookVerifier
	Dispatcher *application.WebhookDispatcher
	// Metrics serves /metrics when set
	Metrics http.Handler
}

// Options configures the router
type Options struct {
	AllowedOrigins []string
	// SwaggerFile is served as /swagger/doc.json when set
	SwaggerFile string
}

// Handler exposes the storefront, admin and webhook endpoints
type Handler struct {
	deps    Dependencies
	options Options
	logger  zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(deps Dependencies, options Options, logger zerolog.Logger) *Handler {
	if len(options.AllowedOrigins) == 0 {
		options.AllowedOrigins = []string{"*"}
	}
	return &Handler{
		deps:    deps,
		options: options,
		logger:  logger,
	}
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.options.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.ShopDomainHeader},
		MaxAge:         300,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.deps.Metrics != nil {
		r.Handle("/metrics", h.deps.Metrics)
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if h.options.SwaggerFile != "" {
		r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, h.options.SwaggerFile)
		})
	}

	// Storefront widget
	r.Get("/api/giftwrap", h.getGiftWrap)

	// Admin routes, scoped to the installed shop
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Tenant(h.deps.Sessions, h.deps.Shops, h.logger))
		r.Get("/settings", h.getSettings)
		r.Put("/settings", h.saveSettings)
		r.Post("/giftwrap/provision", h.provision)
		r.Get("/giftwrap/product", h.getProduct)
		r.Delete("/giftwrap/product", h.deprovision)
	})

	r.Post("/webhooks/shopify", h.handleWebhook)

	return r
}

func (h *Handler) getGiftWrap(w http.ResponseWriter, r *http.Request) {
	shop := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("shop")))
	if shop == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing shop"})
		return
	}

	view, err := h.deps.Settings.GetGiftWrapView(r.Context(), shop)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if view == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopDomainFromContext(r.Context())

	settings, err := h.deps.Settings.GetSettings(r.Context(), shop)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settings": settings})
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)

	var input domain.SettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid settings payload.",
		})
		return
	}

	client, err := h.deps.Clients.ClientFor(shop)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop.Domain).Msg("Failed to create catalog client")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": saveFailedMessage})
		return
	}

	result, err := h.deps.GiftWrap.SaveSettings(ctx, shop.Domain, client, input)
	if err != nil {
		if domain.IsKind(err, domain.KindInvalidInput) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": causeMessage(err)})
			return
		}
		h.logError(r, err).Bool("settingsSaved", result != nil).Msg("Failed to save gift wrap settings")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": saveFailedMessage})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type provisionResponse struct {
	ProductID     string `json:"productId"`
	VariantID     string `json:"variantId"`
	AlreadyLinked bool   `json:"alreadyLinked"`
	Published     bool   `json:"published"`
}

func (h *Handler) provision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)

	client, err := h.deps.Clients.ClientFor(shop)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.deps.GiftWrap.Provision(ctx, shop.Domain, client)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyLinked {
		status = http.StatusOK
	}
	writeJSON(w, status, provisionResponse{
		ProductID:     result.Link.ProductID,
		VariantID:     result.Link.VariantID,
		AlreadyLinked: result.AlreadyLinked,
		Published:     result.Published,
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)

	client, err := h.deps.Clients.ClientFor(shop)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	state, err := h.deps.GiftWrap.ProductStatus(ctx, shop.Domain, client)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) deprovision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)

	client, err := h.deps.Clients.ClientFor(shop)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.deps.GiftWrap.Deprovision(ctx, shop.Domain, client); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError logs the error kind and detail and answers with a generic message
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		status, message = http.StatusBadRequest, causeMessage(err)
	case domain.KindNotFound:
		status, message = http.StatusNotFound, "Not found"
	case domain.KindFieldValidation:
		status, message = http.StatusUnprocessableEntity, "The product was rejected by Shopify"
	case domain.KindTransport, domain.KindPartialSync, domain.KindUnlinkedProduct:
		status, message = http.StatusBadGateway, "Shopify request failed"
	}

	if status >= http.StatusInternalServerError {
		h.logError(r, err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) logError(r *http.Request, err error) *zerolog.Event {
	event := h.logger.Error().
		Err(err).
		Str("kind", domain.KindOf(err).String()).
		Str("path", r.URL.Path).
		Str("requestId", chimiddleware.GetReqID(r.Context()))
	if shop := domain.GetShopDomainFromContext(r.Context()); shop != "" {
		event = event.Str("shop", shop)
	}
	if fields := domain.FieldErrorsOf(err); len(fields) > 0 {
		event = event.Interface("fieldErrors", fields)
	}
	return event
}

// causeMessage returns the message of the error wrapped by the outermost domain error
func causeMessage(err error) string {
	var e *domain.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
