package entity

import "time"

// CartItem is a single line in a cart. Price, name and image come from the
// product document the cart service embeds; the storefront never computes
// them itself.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl"`
}

// Cart is the cart document as served by the cart service, owned by exactly
// one identity.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId,omitempty"`
	SessionID string     `json:"sessionId,omitempty"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Subtotal sums price×quantity across all lines.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	return subtotal
}
