package entity

import "time"

// CheckoutStep is a stage of the checkout flow. Steps only ever advance
// through the usecase layer, which enforces the gating rules.
type CheckoutStep string

const (
	StepShipping  CheckoutStep = "shipping"
	StepPayment   CheckoutStep = "payment"
	StepReview    CheckoutStep = "review"
	StepSubmitted CheckoutStep = "submitted"
)

// CancellationReasons is the fixed set of reasons an order cancellation must
// pick from.
var CancellationReasons = []string{
	"changed-mind",
	"found-cheaper",
	"shipping-delay",
	"other",
}

// ValidCancellationReason reports whether reason is one of the allowed values.
func ValidCancellationReason(reason string) bool {
	for _, r := range CancellationReasons {
		if r == reason {
			return true
		}
	}

	return false
}

// CheckoutSession is the per-identity state of an in-progress purchase. It is
// the only state the storefront itself owns; everything else lives in the
// upstream services.
type CheckoutSession struct {
	Identity   Identity
	Step       CheckoutStep
	ShippingID string
	PaymentID  string
	Cart       *Cart
	Totals     Totals
	OrderID    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Totals is the advisory client-side price breakdown. The order service
// recomputes these authoritatively on submission.
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	ShippingCost float64 `json:"shippingCost"`
	Total        float64 `json:"total"`
}

const (
	taxRate               = 0.10
	flatShippingCost      = 5.99
	freeShippingThreshold = 50
)

// ComputeTotals derives tax and shipping cost from the subtotal: tax is a
// flat 10%, shipping is 5.99 unless the subtotal exceeds the free-shipping
// threshold.
func ComputeTotals(subtotal float64) Totals {
	tax := subtotal * taxRate
	shipping := flatShippingCost
	if subtotal > freeShippingThreshold {
		shipping = 0
	}

	return Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        subtotal + tax + shipping,
	}
}
