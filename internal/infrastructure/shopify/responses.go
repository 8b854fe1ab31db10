package shopify

import "giftwrap-admin-layer/internal/domain"

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func toFieldErrors(errs []userError) []domain.FieldError {
	fields := make([]domain.FieldError, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, domain.FieldError{Field: e.Field, Message: e.Message})
	}
	return fields
}

type productNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Handle string `json:"handle"`
}

func (p *productNode) toDomain() *domain.Product {
	return &domain.Product{
		ID:     p.ID,
		Title:  p.Title,
		Status: domain.ProductStatus(p.Status),
		Handle: p.Handle,
	}
}

type variantNode struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

func (v *variantNode) toDomain() *domain.Variant {
	return &domain.Variant{ID: v.ID, Price: v.Price}
}

type productCreateData struct {
	ProductCreate struct {
		Product    *productNode `json:"product"`
		UserErrors []userError  `json:"userErrors"`
	} `json:"productCreate"`
}

type publicationsData struct {
	Publications struct {
		Edges []struct {
			Node domain.Publication `json:"node"`
		} `json:"edges"`
	} `json:"publications"`
}

type publishablePublishData struct {
	PublishablePublish struct {
		Publishable *struct {
			ID string `json:"id"`
		} `json:"publishable"`
		UserErrors []userError `json:"userErrors"`
	} `json:"publishablePublish"`
}

type productVariantsData struct {
	Product *struct {
		ID       string `json:"id"`
		Variants struct {
			Edges []struct {
				Node variantNode `json:"node"`
			} `json:"edges"`
		} `json:"variants"`
	} `json:"product"`
}

type productUpdateData struct {
	ProductUpdate struct {
		Product    *productNode `json:"product"`
		UserErrors []userError  `json:"userErrors"`
	} `json:"productUpdate"`
}

type productVariantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		ProductVariants []variantNode `json:"productVariants"`
		UserErrors      []userError   `json:"userErrors"`
	} `json:"productVariantsBulkUpdate"`
}

type productDeleteData struct {
	ProductDelete struct {
		DeletedProductID *string     `json:"deletedProductId"`
		UserErrors       []userError `json:"userErrors"`
	} `json:"productDelete"`
}

type productData struct {
	Product *productNode `json:"product"`
}
