package storeapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"

	"github.com/pkg/errors"
)

// cartClient implements gateway.CartGateway against the cart service.
type cartClient struct {
	*client
}

// NewCartGateway is the constructor for the cart service client.
func NewCartGateway(cfg *config.Config, logger *slog.Logger) gateway.CartGateway {
	return &cartClient{
		client: newClient("cart", cfg.Services.Cart, cfg.Upstream, logger),
	}
}

type wireCartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Product   *struct {
		ID       string  `json:"_id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		ImageURL string  `json:"imageUrl"`
	} `json:"product,omitempty"`
}

type wireCart struct {
	Success   bool           `json:"success"`
	ID        string         `json:"_id"`
	UserID    string         `json:"userId"`
	SessionID string         `json:"sessionId"`
	Items     []wireCartItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

// identityValues builds the userId/sessionId query pair. Exactly one side is
// ever populated; an authenticated identity never forwards a session id.
func identityValues(identity entity.Identity) url.Values {
	values := url.Values{}
	if identity.UserID != "" {
		values.Set("userId", identity.UserID)
	} else {
		values.Set("sessionId", identity.SessionID)
	}

	return values
}

type cartMutation struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	UserID    string `json:"userId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

func mutationBody(identity entity.Identity, item gateway.CartItemInput) cartMutation {
	return cartMutation{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Color:     item.Color,
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
	}
}

// Find retrieves the identity's cart. A 404 (or an empty document) maps to
// gateway.ErrCartNotFound.
func (c *cartClient) Find(ctx context.Context, identity entity.Identity) (*entity.Cart, error) {
	var wire wireCart
	err := c.call(ctx, http.MethodGet, "/api/Cart/find", identityValues(identity), nil, nil, &wire)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, errors.WithStack(gateway.ErrCartNotFound)
		}

		return nil, c.mapError(err)
	}
	if wire.ID == "" && len(wire.Items) == 0 {
		return nil, errors.WithStack(gateway.ErrCartNotFound)
	}

	cart := &entity.Cart{
		ID:        wire.ID,
		UserID:    wire.UserID,
		SessionID: wire.SessionID,
		CreatedAt: wire.CreatedAt,
		Items:     make([]entity.CartItem, 0, len(wire.Items)),
	}
	for _, item := range wire.Items {
		line := entity.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		}
		if item.Product != nil {
			line.Price = item.Product.Price
			line.Name = item.Product.Name
			line.ImageURL = item.Product.ImageURL
		}
		cart.Items = append(cart.Items, line)
	}

	return cart, nil
}

// Add adds an item to the identity's cart.
func (c *cartClient) Add(ctx context.Context, identity entity.Identity, item gateway.CartItemInput) error {
	if err := c.call(ctx, http.MethodPost, "/api/Cart/add", nil, nil, mutationBody(identity, item), nil); err != nil {
		return c.mapError(err)
	}

	return nil
}

// Update replaces an existing line's quantity and variant selection.
func (c *cartClient) Update(ctx context.Context, identity entity.Identity, item gateway.CartItemInput) error {
	if err := c.call(ctx, http.MethodPut, "/api/Cart", nil, nil, mutationBody(identity, item), nil); err != nil {
		return c.mapError(err)
	}

	return nil
}

// Remove deletes a line entirely.
func (c *cartClient) Remove(ctx context.Context, identity entity.Identity, productID string) error {
	body := cartMutation{
		ProductID: productID,
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
	}
	if err := c.call(ctx, http.MethodDelete, "/api/Cart/delete", nil, nil, body, nil); err != nil {
		return c.mapError(err)
	}

	return nil
}

// Clear empties the identity's cart.
func (c *cartClient) Clear(ctx context.Context, identity entity.Identity) error {
	if err := c.call(ctx, http.MethodDelete, "/api/Cart/clear", identityValues(identity), nil, nil, nil); err != nil {
		return c.mapError(err)
	}

	return nil
}
