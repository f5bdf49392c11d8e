package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderGateway   gateway.OrderGateway
	catalogGateway gateway.CatalogGateway
	logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orderGateway gateway.OrderGateway,
	catalogGateway gateway.CatalogGateway,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orderGateway:   orderGateway,
		catalogGateway: catalogGateway,
		logger:         logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Confirmation fetches an order and enriches its lines with the product
// documents. Product enrichment is best-effort: lines whose product has
// disappeared from the catalog are returned without one.
func (srv *orderService) Confirmation(ctx context.Context, orderID string) (*usecase.ConfirmationOutput, error) {
	srv.log(ctx).Debug("Building order confirmation", slog.String("order_id", orderID))

	order, err := srv.orderGateway.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, gateway.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "confirmation lookup")
		}

		return nil, errors.Wrap(err, "failed to fetch order")
	}

	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	products := map[string]entity.Product{}
	if len(ids) > 0 {
		products, err = srv.catalogGateway.FindProducts(ctx, ids)
		if err != nil {
			srv.log(ctx).Warn("Product enrichment failed",
				slog.String("order_id", orderID),
				slog.Any("error", err))
			products = map[string]entity.Product{}
		}
	}

	items := make([]usecase.ConfirmationItem, 0, len(order.Items))
	for _, item := range order.Items {
		ci := usecase.ConfirmationItem{OrderItem: item}
		if product, ok := products[item.ProductID]; ok {
			p := product
			ci.Product = &p
		}
		items = append(items, ci)
	}

	return &usecase.ConfirmationOutput{Order: order, Items: items}, nil
}

// List returns all orders for the admin surface.
func (srv *orderService) List(ctx context.Context) ([]entity.Order, error) {
	orders, err := srv.orderGateway.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}
