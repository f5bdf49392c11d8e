package entity

import "time"

// OrderStatus mirrors the lifecycle the order service reports. The
// storefront consumes these values, it does not own the transitions.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem is a line item as submitted to the order service. Price and
// image are snapshotted from the cart at submission time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Order is the order document. Shipping and payment records are referenced
// by id, never embedded.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId,omitempty"`
	SessionID    string      `json:"sessionId,omitempty"`
	GuestEmail   string      `json:"guestEmail,omitempty"`
	ShippingID   string      `json:"shippingId"`
	PaymentID    string      `json:"paymentId"`
	Items        []OrderItem `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	Tax          float64     `json:"tax"`
	ShippingCost float64     `json:"shippingCost"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ShippingRecord is the server-assigned shipping document returned by the
// shipping service.
type ShippingRecord struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Country       string    `json:"country"`
	StreetAddress string    `json:"streetAddress"`
	Apartment     string    `json:"apartment,omitempty"`
	City          string    `json:"city"`
	StateProvince string    `json:"stateProvince"`
	PostalCode    string    `json:"postalCode"`
	PhoneNumber   string    `json:"phoneNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentRecord is the server-assigned payment document returned by the
// payment service. Only the last four digits of the card survive.
type PaymentRecord struct {
	ID         string    `json:"id"`
	CardName   string    `json:"cardName"`
	CardLast4  string    `json:"cardLast4"`
	ExpiryDate string    `json:"expiryDate"`
	CreatedAt  time.Time `json:"createdAt"`
}
