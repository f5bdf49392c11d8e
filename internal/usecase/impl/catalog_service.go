package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogGateway gateway.CatalogGateway
	logger         *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	catalogGateway gateway.CatalogGateway,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		catalogGateway: catalogGateway,
		logger:         logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts retrieves products matching the query.
func (srv *catalogService) ListProducts(ctx context.Context, query gateway.ProductQuery) ([]entity.Product, error) {
	products, err := srv.catalogGateway.ListProducts(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct retrieves a single product by slug.
func (srv *catalogService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.catalogGateway.FindProduct(ctx, slug)
	if err != nil {
		if errors.Is(err, gateway.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "product lookup")
		}

		return nil, errors.Wrap(err, "failed to fetch product")
	}

	return product, nil
}

// ListCategories retrieves the category tree.
func (srv *catalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := srv.catalogGateway.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// GetCategory retrieves a category with its filter schema populated. The
// category document names the filter fields; the allowed values for each
// field are aggregated from the category's products. Category and products
// are fetched concurrently.
func (srv *catalogService) GetCategory(ctx context.Context, slug string) (*entity.Category, error) {
	var (
		category *entity.Category
		products []entity.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := srv.catalogGateway.FindCategory(gctx, slug)
		if err != nil {
			if errors.Is(err, gateway.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "category lookup")
			}

			return errors.Wrap(err, "failed to fetch category")
		}
		category = found

		return nil
	})
	g.Go(func() error {
		found, err := srv.catalogGateway.ListProducts(gctx, gateway.ProductQuery{CategorySlug: slug})
		if err != nil {
			return errors.Wrap(err, "failed to list category products")
		}
		products = found

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range category.Filters {
		category.Filters[i].Values = filterValues(products, category.Filters[i].Name)
	}

	srv.log(ctx).Debug("Category filter schema built",
		slog.String("slug", slug),
		slog.Int("filters", len(category.Filters)),
		slog.Int("products", len(products)))

	return category, nil
}

// filterValues collects the distinct, sorted values products expose for one
// filter field. Size and color come from the variant lists, everything else
// from the product's filter map.
func filterValues(products []entity.Product, field string) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		switch field {
		case "size":
			for _, v := range p.Sizes {
				seen[v] = struct{}{}
			}
		case "color":
			for _, v := range p.Colors {
				seen[v] = struct{}{}
			}
		default:
			for _, v := range p.Filters[field] {
				seen[v] = struct{}{}
			}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	return values
}
