package ports

import (
	"context"

	"giftwrap-admin-layer/internal/domain"
)

// GiftWrapCache caches the storefront read model per shop. Every Invalidate bumps the shop's
// generation; a view loaded under an older generation is never stored.
type GiftWrapCache interface {
	// Get returns (nil, false, nil) on a miss
	Get(ctx context.Context, shop string) (*domain.GiftWrapView, bool, error)
	// Generation must be read before loading the view that will be passed to Set
	Generation(ctx context.Context, shop string) (int64, error)
	// Set stores the view unless the shop was invalidated since generation; it reports whether it stored
	Set(ctx context.Context, shop string, generation int64, view *domain.GiftWrapView) (bool, error)
	Invalidate(ctx context.Context, shop string) error
}

// WorkflowMetrics records workflow outcomes
type WorkflowMetrics interface {
	RecordWorkflow(workflow string, outcome string)
}
