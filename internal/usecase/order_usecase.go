package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// ConfirmationItem is an order line enriched with the product document, for
// the confirmation view.
type ConfirmationItem struct {
	entity.OrderItem
	Product *entity.Product
}

// ConfirmationOutput is the confirmation-view payload for one order.
type ConfirmationOutput struct {
	Order *entity.Order
	Items []ConfirmationItem
}

// OrderUsecase defines the read-side order operations.
type OrderUsecase interface {
	// Confirmation fetches an order and enriches its lines with product
	// details for display.
	Confirmation(ctx context.Context, orderID string) (*ConfirmationOutput, error)

	// List returns all orders; admin surface only.
	List(ctx context.Context) ([]entity.Order, error)
}
