package domain

// ProductStatus mirrors the remote platform's product status enum
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Product is the subset of a remote product the app works with
type Product struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Status ProductStatus `json:"status"`
	Handle string        `json:"handle,omitempty"`
}

// Variant is a remote product variant; Price is the platform's decimal string
type Variant struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

// Publication is a sales channel publication
type Publication struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
