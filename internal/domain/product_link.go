package domain

import "time"

// ProductLink records the remote product and variant provisioned for a shop.
// Identifiers never change once written; the record is only read or deleted.
type ProductLink struct {
	ID        string    `json:"id"`
	Shop      string    `json:"shop"`
	ProductID string    `json:"productId"`
	VariantID string    `json:"variantId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductRef is the link as exposed to the storefront widget
type ProductRef struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
}

// GiftWrapView is the combined settings + product link read model
type GiftWrapView struct {
	*Settings
	Product *ProductRef `json:"product"`
}

// NewGiftWrapView combines settings with an optional link
func NewGiftWrapView(settings *Settings, link *ProductLink) *GiftWrapView {
	view := &GiftWrapView{Settings: settings}
	if link != nil {
		view.Product = &ProductRef{ProductID: link.ProductID, VariantID: link.VariantID}
	}
	return view
}
