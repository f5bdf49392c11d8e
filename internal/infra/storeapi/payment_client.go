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

// paymentClient implements gateway.PaymentGateway against the payment service.
type paymentClient struct {
	*client
}

// NewPaymentGateway is the constructor for the payment service client.
func NewPaymentGateway(cfg *config.Config, logger *slog.Logger) gateway.PaymentGateway {
	return &paymentClient{
		client: newClient("payment", cfg.Services.Payment, cfg.Upstream, logger),
	}
}

type wirePayment struct {
	ID         string    `json:"_id"`
	CardName   string    `json:"cardName"`
	CardNumber string    `json:"cardNumber"`
	ExpiryDate string    `json:"expiryDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Create stores a payment record. The service echoes the document either at
// the top level or under "data"; both shapes are accepted.
func (c *paymentClient) Create(ctx context.Context, input gateway.PaymentInput) (*entity.PaymentRecord, error) {
	body := map[string]string{
		"cardName":   input.CardName,
		"cardNumber": input.CardNumber,
		"cvv":        input.CVV,
		"expiryDate": input.ExpiryDate,
	}

	var result struct {
		wirePayment
		Data *wirePayment `json:"data"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/payment/post", nil, nil, body, &result); err != nil {
		return nil, c.mapError(err)
	}

	doc := result.wirePayment
	if result.Data != nil {
		doc = *result.Data
	}
	if doc.ID == "" {
		return nil, domainerrors.NewUpstreamError("payment", http.StatusBadGateway, "", "payment service returned no document id")
	}

	record := &entity.PaymentRecord{
		ID:         doc.ID,
		CardName:   doc.CardName,
		CardLast4:  last4(doc.CardNumber),
		ExpiryDate: doc.ExpiryDate,
		CreatedAt:  doc.CreatedAt,
	}

	return record, nil
}

func last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}

	return cardNumber[len(cardNumber)-4:]
}
