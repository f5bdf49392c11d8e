package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
)

// CatalogUsecase defines catalog browsing: thin pass-throughs to the
// product/category service, plus filter-schema assembly for categories.
type CatalogUsecase interface {
	// ListProducts retrieves products matching the query.
	ListProducts(ctx context.Context, query gateway.ProductQuery) ([]entity.Product, error)

	// GetProduct retrieves a single product by slug.
	GetProduct(ctx context.Context, slug string) (*entity.Product, error)

	// ListCategories retrieves the category tree.
	ListCategories(ctx context.Context) ([]entity.Category, error)

	// GetCategory retrieves a category with its filter schema populated:
	// allowed values for each filter field are aggregated from the
	// category's products.
	GetCategory(ctx context.Context, slug string) (*entity.Category, error)
}
