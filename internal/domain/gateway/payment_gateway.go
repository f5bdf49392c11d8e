package gateway

import (
	"context"

	"storefront/internal/domain/entity"
)

// PaymentInput is the card data submitted during the payment step. The
// payment service stores the record and returns its id; the storefront keeps
// only the id and the masked summary.
type PaymentInput struct {
	CardName   string
	CardNumber string
	CVV        string
	ExpiryDate string
}

// PaymentGateway defines the operations the payment service exposes.
type PaymentGateway interface {
	// Create stores a payment record and returns the server-assigned document.
	Create(ctx context.Context, input PaymentInput) (*entity.PaymentRecord, error)
}
