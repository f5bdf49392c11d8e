package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// AddItemInput defines the data required to add a line to the cart.
type AddItemInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

// CartOutput is a cart snapshot plus the advisory totals derived from it.
type CartOutput struct {
	Cart   *entity.Cart
	Totals entity.Totals
}

// CartUsecase defines cart reconciliation: every operation is keyed by the
// resolved shopper identity, mutations are serialized per identity and
// followed by a full refetch.
type CartUsecase interface {
	// Fetch retrieves the identity's cart. A missing cart is an empty cart,
	// not an error.
	Fetch(ctx context.Context, identity entity.Identity) (*CartOutput, error)

	// AddItem adds a line (or increments an existing one server-side).
	AddItem(ctx context.Context, identity entity.Identity, input *AddItemInput) (*CartOutput, error)

	// UpdateQuantity sets a line's quantity. Quantities below 1 are a no-op.
	UpdateQuantity(ctx context.Context, identity entity.Identity, productID string, quantity int) (*CartOutput, error)

	// RemoveItem deletes a line entirely.
	RemoveItem(ctx context.Context, identity entity.Identity, productID string) (*CartOutput, error)
}
