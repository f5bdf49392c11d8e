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
)

// shippingClient implements gateway.ShippingGateway against the shipping service.
type shippingClient struct {
	*client
}

// NewShippingGateway is the constructor for the shipping service client.
func NewShippingGateway(cfg *config.Config, logger *slog.Logger) gateway.ShippingGateway {
	return &shippingClient{
		client: newClient("shipping", cfg.Services.Shipping, cfg.Upstream, logger),
	}
}

// Create stores a shipping record and returns the server-assigned document.
func (c *shippingClient) Create(ctx context.Context, input gateway.ShippingInput) (*entity.ShippingRecord, error) {
	body := map[string]string{
		"fullName":      input.FullName,
		"country":       input.Country,
		"streetAddress": input.StreetAddress,
		"apartment":     input.Apartment,
		"city":          input.City,
		"stateProvince": input.StateProvince,
		"postalCode":    input.PostalCode,
		"phoneNumber":   input.PhoneNumber,
	}

	var result struct {
		ID            string    `json:"_id"`
		FullName      string    `json:"fullName"`
		Country       string    `json:"country"`
		StreetAddress string    `json:"streetAddress"`
		Apartment     string    `json:"apartment"`
		City          string    `json:"city"`
		StateProvince string    `json:"stateProvince"`
		PostalCode    string    `json:"postalCode"`
		PhoneNumber   string    `json:"phoneNumber"`
		CreatedAt     time.Time `json:"createdAt"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/shipping/post", nil, nil, body, &result); err != nil {
		return nil, c.mapError(err)
	}
	if result.ID == "" {
		return nil, domainerrors.NewUpstreamError("shipping", http.StatusBadGateway, "", "shipping service returned no document id")
	}

	record := &entity.ShippingRecord{
		ID:            result.ID,
		FullName:      result.FullName,
		Country:       result.Country,
		StreetAddress: result.StreetAddress,
		Apartment:     result.Apartment,
		City:          result.City,
		StateProvince: result.StateProvince,
		PostalCode:    result.PostalCode,
		PhoneNumber:   result.PhoneNumber,
		CreatedAt:     result.CreatedAt,
	}

	return record, nil
}
