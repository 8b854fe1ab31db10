package shopify

import (
	"errors"
	"net/http"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// ErrInvalidSignature is returned when a webhook's HMAC does not match the app secret
var ErrInvalidSignature = errors.New("invalid webhook signature")

// WebhookVerifier checks the X-Shopify-Hmac-Sha256 header of incoming webhooks
type WebhookVerifier struct {
	app goshopify.App
}

// NewWebhookVerifier creates a verifier for the app's API secret
func NewWebhookVerifier(apiSecret string) *WebhookVerifier {
	return &WebhookVerifier{app: goshopify.App{ApiSecret: apiSecret}}
}

// Verify validates the request signature. The request body stays readable afterwards.
func (v *WebhookVerifier) Verify(r *http.Request) error {
	if v.app.ApiSecret == "" {
		return errors.New("webhook secret not configured")
	}
	if r.Header.Get("X-Shopify-Hmac-Sha256") == "" {
		return ErrInvalidSignature
	}
	if !v.app.VerifyWebhookRequest(r) {
		return ErrInvalidSignature
	}
	return nil
}
