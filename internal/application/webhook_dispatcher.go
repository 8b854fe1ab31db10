package application

import (
	"context"
	"fmt"

	"giftwrap-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// WebhookHandler processes webhook events for the topics it accepts
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes verified webhook events to the registered handlers
type WebhookDispatcher struct {
	handlers []WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates a new webhook dispatcher
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{logger: logger}
}

// RegisterHandler adds a handler. Handlers are not safe to register while dispatching.
func (d *WebhookDispatcher) RegisterHandler(handler WebhookHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch runs every handler that accepts the event's topic and stops at the first error.
// Events for topics nobody handles are acknowledged.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	if !event.Verified {
		return domain.NewInvalidInputError("webhook.dispatch", "unverified webhook event")
	}

	handled := false
	for _, handler := range d.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		handled = true
		if err := handler.Handle(ctx, event); err != nil {
			return fmt.Errorf("failed to handle %s webhook: %w", event.Topic, err)
		}
	}

	if !handled {
		d.logger.Debug().Str("topic", event.Topic).Str("shop", event.Shop).Msg("No handler for webhook topic")
	}
	return nil
}
