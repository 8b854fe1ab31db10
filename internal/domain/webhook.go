package domain

// WebhookEvent is a verified webhook delivery
type WebhookEvent struct {
	Topic    string
	Shop     string
	Payload  []byte
	Verified bool
}

const (
	TopicProductsDelete = "products/delete"
	TopicAppUninstalled = "app/uninstalled"
)
