package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// Domain-specific errors for catalog lookups.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductQuery narrows a product listing.
type ProductQuery struct {
	CategorySlug string
	Search       string
	Page         int
	Limit        int
}

// CatalogGateway defines the operations the product/category service exposes.
type CatalogGateway interface {
	// ListProducts retrieves products matching the query.
	ListProducts(ctx context.Context, query ProductQuery) ([]entity.Product, error)

	// FindProduct retrieves a single product by slug.
	FindProduct(ctx context.Context, slug string) (*entity.Product, error)

	// FindProducts retrieves several products by id, for order enrichment.
	FindProducts(ctx context.Context, ids []string) (map[string]entity.Product, error)

	// ListCategories retrieves the category tree.
	ListCategories(ctx context.Context) ([]entity.Category, error)

	// FindCategory retrieves a single category (and its filter schema) by slug.
	FindCategory(ctx context.Context, slug string) (*entity.Category, error)
}
