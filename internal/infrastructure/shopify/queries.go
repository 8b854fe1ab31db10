package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// document is a GraphQL operation together with its parsed name and type
type document struct {
	name      string
	operation ast.Operation
	query     string
}

// mustDocument parses a single-operation GraphQL document; a malformed document is a programming error
func mustDocument(query string) document {
	doc, err := parseDocument(query)
	if err != nil {
		panic(err)
	}
	return doc
}

func parseDocument(query string) (document, error) {
	parsed, err := parser.ParseQuery(&ast.Source{Name: "catalog", Input: query})
	if err != nil {
		return document{}, fmt.Errorf("invalid GraphQL document: %v", err)
	}
	if len(parsed.Operations) != 1 {
		return document{}, fmt.Errorf("expected exactly one operation, got %d", len(parsed.Operations))
	}

	op := parsed.Operations[0]
	if op.Name == "" {
		return document{}, fmt.Errorf("operation must be named")
	}
	return document{name: op.Name, operation: op.Operation, query: query}, nil
}

var productCreateMutation = mustDocument(`
mutation ProductCreate($product: ProductCreateInput!) {
  productCreate(product: $product) {
    product {
      id
      title
      status
      handle
    }
    userErrors {
      field
      message
    }
  }
}
`)

var publicationsQuery = mustDocument(`
query Publications($first: Int!) {
  publications(first: $first) {
    edges {
      node {
        id
        name
      }
    }
  }
}
`)

var publishablePublishMutation = mustDocument(`
mutation PublishablePublish($id: ID!, $input: [PublicationInput!]!) {
  publishablePublish(id: $id, input: $input) {
    publishable {
      ... on Product {
        id
        handle
      }
    }
    userErrors {
      field
      message
    }
  }
}
`)

var productVariantsQuery = mustDocument(`
query GetProductVariants($id: ID!) {
  product(id: $id) {
    id
    variants(first: 1) {
      edges {
        node {
          id
          price
        }
      }
    }
  }
}
`)

var productUpdateMutation = mustDocument(`
mutation ProductUpdate($product: ProductUpdateInput!) {
  productUpdate(product: $product) {
    product {
      id
      title
      status
      handle
    }
    userErrors {
      field
      message
    }
  }
}
`)

var productVariantsBulkUpdateMutation = mustDocument(`
mutation ProductVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}
`)

var productDeleteMutation = mustDocument(`
mutation ProductDelete($input: ProductDeleteInput!) {
  productDelete(input: $input) {
    deletedProductId
    userErrors {
      field
      message
    }
  }
}
`)

var productQuery = mustDocument(`
query GetProduct($id: ID!) {
  product(id: $id) {
    id
    title
    status
    handle
  }
}
`)
