package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrOrderNotFound is returned when the order service has no order for the id.
var ErrOrderNotFound = errors.New("order not found")

// CreateOrderInput is the payload for order creation. Exactly one of UserID
// or SessionID is set; GuestEmail accompanies SessionID for guest checkout.
type CreateOrderInput struct {
	UserID       string
	SessionID    string
	GuestEmail   string
	ShippingID   string
	PaymentID    string
	Items        []entity.OrderItem
	Subtotal     float64
	Tax          float64
	ShippingCost float64
	Total        float64
}

// OrderGateway defines the operations the order service exposes.
type OrderGateway interface {
	// Create submits a new order and returns the server-assigned order id.
	Create(ctx context.Context, input CreateOrderInput) (string, error)

	// Find retrieves an order by id for the confirmation view.
	Find(ctx context.Context, orderID string) (*entity.Order, error)

	// FindAll lists orders, used by the admin surface.
	FindAll(ctx context.Context) ([]entity.Order, error)

	// Cancel cancels a submitted order with the given reason.
	Cancel(ctx context.Context, orderID, reason string) error
}
