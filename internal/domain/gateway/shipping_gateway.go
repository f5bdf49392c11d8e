package gateway

import (
	"context"

	"storefront/internal/domain/entity"
)

// ShippingInput is the address data submitted during the shipping step.
type ShippingInput struct {
	FullName      string
	Country       string
	StreetAddress string
	Apartment     string
	City          string
	StateProvince string
	PostalCode    string
	PhoneNumber   string
}

// ShippingGateway defines the operations the shipping service exposes.
type ShippingGateway interface {
	// Create stores a shipping record and returns the server-assigned document.
	Create(ctx context.Context, input ShippingInput) (*entity.ShippingRecord, error)
}
