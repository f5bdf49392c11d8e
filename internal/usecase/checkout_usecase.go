package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SubmitShippingInput is the address form payload for the shipping step.
type SubmitShippingInput struct {
	FullName      string
	Country       string
	StreetAddress string
	Apartment     string
	City          string
	StateProvince string
	PostalCode    string
	PhoneNumber   string
}

// SubmitPaymentInput is the card form payload for the payment step.
type SubmitPaymentInput struct {
	CardName   string
	CardNumber string
	CVV        string
	ExpiryDate string
}

// CheckoutView is the client-facing snapshot of a checkout session.
type CheckoutView struct {
	Step       entity.CheckoutStep
	ShippingID string
	PaymentID  string
	Items      []entity.CartItem
	Totals     entity.Totals
	OrderID    string
}

// SubmitOutput is the result of a confirmed order submission.
type SubmitOutput struct {
	OrderID string
	// CartCleared is false when the order was placed but the follow-up cart
	// clear failed; the order stands either way.
	CartCleared bool
}

// CheckoutUsecase drives the purchase flow: shipping → payment → review →
// submitted, with edit-backtracks from review and a local abandon path.
type CheckoutUsecase interface {
	// Begin starts (or resumes) a checkout for the identity. The cart is
	// fetched first; an empty cart fails with ErrCartEmpty.
	Begin(ctx context.Context, identity entity.Identity) (*CheckoutView, error)

	// Current returns the in-progress checkout without side effects.
	Current(ctx context.Context, identity entity.Identity) (*CheckoutView, error)

	// SubmitShipping stores the address with the shipping service and
	// advances shipping → payment.
	SubmitShipping(ctx context.Context, identity entity.Identity, input *SubmitShippingInput) (*CheckoutView, error)

	// SubmitPayment stores the card with the payment service and advances
	// payment → review. Requires a shipping id.
	SubmitPayment(ctx context.Context, identity entity.Identity, input *SubmitPaymentInput) (*CheckoutView, error)

	// EditStep backtracks from review to shipping or payment.
	EditStep(ctx context.Context, identity entity.Identity, step entity.CheckoutStep) (*CheckoutView, error)

	// Submit places the order after explicit confirmation. Guests must
	// supply a syntactically valid email; authenticated shoppers must not.
	Submit(ctx context.Context, identity entity.Identity, guestEmail string) (*SubmitOutput, error)

	// Abandon discards the checkout session locally. No upstream call.
	Abandon(ctx context.Context, identity entity.Identity) error

	// Cancel cancels the already-submitted order of this checkout with a
	// reason from the fixed set. Requires a non-empty order id.
	Cancel(ctx context.Context, identity entity.Identity, reason string) error
}
