package storeapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"

	"github.com/pkg/errors"
)

// orderClient implements gateway.OrderGateway against the order service.
type orderClient struct {
	*client
}

// NewOrderGateway is the constructor for the order service client.
func NewOrderGateway(cfg *config.Config, logger *slog.Logger) gateway.OrderGateway {
	return &orderClient{
		client: newClient("order", cfg.Services.Order, cfg.Upstream, logger),
	}
}

type wireOrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type wireOrder struct {
	ID           string          `json:"_id"`
	UserID       string          `json:"userId"`
	SessionID    string          `json:"sessionId"`
	GuestEmail   string          `json:"guestEmail"`
	ShippingID   string          `json:"shippingId"`
	PaymentID    string          `json:"paymentId"`
	Items        []wireOrderItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
	Tax          float64         `json:"tax"`
	ShippingCost float64         `json:"shippingCost"`
	Total        float64         `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (w *wireOrder) toEntity() entity.Order {
	order := entity.Order{
		ID:           w.ID,
		UserID:       w.UserID,
		SessionID:    w.SessionID,
		GuestEmail:   w.GuestEmail,
		ShippingID:   w.ShippingID,
		PaymentID:    w.PaymentID,
		Subtotal:     w.Subtotal,
		Tax:          w.Tax,
		ShippingCost: w.ShippingCost,
		Total:        w.Total,
		Status:       entity.OrderStatus(w.Status),
		CreatedAt:    w.CreatedAt,
		Items:        make([]entity.OrderItem, 0, len(w.Items)),
	}
	for _, item := range w.Items {
		order.Items = append(order.Items, entity.OrderItem(item))
	}

	return order
}

// Create submits a new order and returns the server-assigned order id.
func (c *orderClient) Create(ctx context.Context, input gateway.CreateOrderInput) (string, error) {
	body := map[string]any{
		"shippingId":   input.ShippingID,
		"paymentId":    input.PaymentID,
		"items":        input.Items,
		"subtotal":     input.Subtotal,
		"tax":          input.Tax,
		"shippingCost": input.ShippingCost,
		"total":        input.Total,
	}
	if input.UserID != "" {
		body["userId"] = input.UserID
	} else {
		body["sessionId"] = input.SessionID
		body["guestEmail"] = input.GuestEmail
	}

	var result struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
		Message string `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/order/add", nil, nil, body, &result); err != nil {
		return "", c.mapError(err)
	}
	if !result.Success || result.OrderID == "" {
		return "", domainerrors.NewUpstreamError("order", http.StatusBadGateway, result.Message, "order service reported failure without an order id")
	}

	return result.OrderID, nil
}

// Find retrieves an order by id.
func (c *orderClient) Find(ctx context.Context, orderID string) (*entity.Order, error) {
	var wire wireOrder
	if err := c.call(ctx, http.MethodGet, "/api/order/"+orderID, nil, nil, nil, &wire); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, errors.WithStack(gateway.ErrOrderNotFound)
		}

		return nil, c.mapError(err)
	}

	order := wire.toEntity()

	return &order, nil
}

// FindAll lists orders for the admin surface.
func (c *orderClient) FindAll(ctx context.Context) ([]entity.Order, error) {
	var wires []wireOrder
	if err := c.call(ctx, http.MethodGet, "/api/order", nil, nil, nil, &wires); err != nil {
		return nil, c.mapError(err)
	}

	orders := make([]entity.Order, 0, len(wires))
	for i := range wires {
		orders = append(orders, wires[i].toEntity())
	}

	return orders, nil
}

// Cancel cancels a submitted order with the given reason.
func (c *orderClient) Cancel(ctx context.Context, orderID, reason string) error {
	body := map[string]any{
		"reason": reason,
	}
	if err := c.call(ctx, http.MethodPost, "/api/order/"+orderID+"/cancel", nil, nil, body, nil); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return errors.WithStack(gateway.ErrOrderNotFound)
		}

		return c.mapError(err)
	}

	return nil
}
