package api

import (
	"io"
	"net/http"
	"strings"

	"giftwrap-admin-layer/internal/domain"
)

const (
	topicHeader       = "X-Shopify-Topic"
	webhookShopHeader = "X-Shopify-Shop-Domain"
)

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.deps.Verifier.Verify(r); err != nil {
		h.logger.Warn().Err(err).Msg("Webhook signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	topic := r.Header.Get(topicHeader)
	if topic == "" {
		h.logger.Warn().Msg("Missing X-Shopify-Topic header")
		http.Error(w, "Missing X-Shopify-Topic header", http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read webhook payload")
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	event := &domain.WebhookEvent{
		Topic:    topic,
		Shop:     strings.ToLower(r.Header.Get(webhookShopHeader)),
		Payload:  payload,
		Verified: true,
	}

	if err := h.deps.Dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.Error().
			Err(err).
			Str("topic", topic).
			Str("shop", event.Shop).
			Msg("Failed to dispatch webhook event")

		// 5xx makes Shopify retry the delivery
		http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
