package storeapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"

	"github.com/pkg/errors"
)

// catalogClient implements gateway.CatalogGateway against the
// product/category service.
type catalogClient struct {
	*client
}

// NewCatalogGateway is the constructor for the catalog service client.
func NewCatalogGateway(cfg *config.Config, logger *slog.Logger) gateway.CatalogGateway {
	return &catalogClient{
		client: newClient("catalog", cfg.Services.Catalog, cfg.Upstream, logger),
	}
}

type wireProduct struct {
	ID           string              `json:"_id"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	ImageURL     string              `json:"imageUrl"`
	CategorySlug string              `json:"categoryslug"`
	Sizes        []string            `json:"sizes"`
	Colors       []string            `json:"colors"`
	Fit          string              `json:"fit"`
	Material     string              `json:"material"`
	Filters      map[string][]string `json:"filters"`
}

func (w *wireProduct) toEntity() entity.Product {
	return entity.Product{
		ID:           w.ID,
		Name:         w.Name,
		Slug:         w.Slug,
		Description:  w.Description,
		Price:        w.Price,
		ImageURL:     w.ImageURL,
		CategorySlug: w.CategorySlug,
		Sizes:        w.Sizes,
		Colors:       w.Colors,
		Fit:          w.Fit,
		Material:     w.Material,
		Filters:      w.Filters,
	}
}

type wireCategory struct {
	ID            string         `json:"_id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	ParentSlug    string         `json:"parentslug"`
	Filters       []string       `json:"filters"`
	Subcategories []wireCategory `json:"subcategories"`
}

// toEntity converts the category document, turning the service's flat filter
// name list into the declarative field schema the storefront renders from.
// Allowed values are aggregated from the products by the usecase layer; here
// only the names are known.
func (w *wireCategory) toEntity() entity.Category {
	category := entity.Category{
		ID:         w.ID,
		Name:       w.Name,
		Slug:       w.Slug,
		ParentSlug: w.ParentSlug,
		Filters:    make([]entity.CategoryFilter, 0, len(w.Filters)),
	}
	for _, name := range w.Filters {
		category.Filters = append(category.Filters, entity.CategoryFilter{Name: name})
	}
	for i := range w.Subcategories {
		category.Subcategories = append(category.Subcategories, w.Subcategories[i].toEntity())
	}

	return category
}

// ListProducts retrieves products matching the query.
func (c *catalogClient) ListProducts(ctx context.Context, query gateway.ProductQuery) ([]entity.Product, error) {
	values := url.Values{}
	if query.CategorySlug != "" {
		values.Set("category", query.CategorySlug)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}

	var wires []wireProduct
	if err := c.call(ctx, http.MethodGet, "/api/products", values, nil, nil, &wires); err != nil {
		return nil, c.mapError(err)
	}

	products := make([]entity.Product, 0, len(wires))
	for i := range wires {
		products = append(products, wires[i].toEntity())
	}

	return products, nil
}

// FindProduct retrieves a single product by slug.
func (c *catalogClient) FindProduct(ctx context.Context, slug string) (*entity.Product, error) {
	var wire wireProduct
	if err := c.call(ctx, http.MethodGet, "/api/products/"+url.PathEscape(slug), nil, nil, nil, &wire); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, errors.WithStack(gateway.ErrProductNotFound)
		}

		return nil, c.mapError(err)
	}

	product := wire.toEntity()

	return &product, nil
}

// FindProducts retrieves several products by id, keyed by id.
func (c *catalogClient) FindProducts(ctx context.Context, ids []string) (map[string]entity.Product, error) {
	if len(ids) == 0 {
		return map[string]entity.Product{}, nil
	}

	values := url.Values{}
	values.Set("ids", strings.Join(ids, ","))

	var wires []wireProduct
	if err := c.call(ctx, http.MethodGet, "/api/products", values, nil, nil, &wires); err != nil {
		return nil, c.mapError(err)
	}

	products := make(map[string]entity.Product, len(wires))
	for i := range wires {
		product := wires[i].toEntity()
		products[product.ID] = product
	}

	return products, nil
}

// ListCategories retrieves the category tree.
func (c *catalogClient) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var wires []wireCategory
	if err := c.call(ctx, http.MethodGet, "/api/categories", nil, nil, nil, &wires); err != nil {
		return nil, c.mapError(err)
	}

	categories := make([]entity.Category, 0, len(wires))
	for i := range wires {
		categories = append(categories, wires[i].toEntity())
	}

	return categories, nil
}

// FindCategory retrieves a single category by slug.
func (c *catalogClient) FindCategory(ctx context.Context, slug string) (*entity.Category, error) {
	var wire wireCategory
	if err := c.call(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(slug), nil, nil, nil, &wire); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, errors.WithStack(gateway.ErrCategoryNotFound)
		}

		return nil, c.mapError(err)
	}

	category := wire.toEntity()

	return &category, nil
}
