// Package gateway defines the interfaces for the external storefront services.
// These interfaces act as a contract between the domain/application layers and
// the HTTP client implementations in the infrastructure layer.
package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrCartNotFound is a domain-specific error returned when no cart exists for
// the given identity.
var ErrCartNotFound = errors.New("cart not found")

// CartItemInput is a cart mutation payload: an item to add or update, keyed
// by the owning identity.
type CartItemInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

// CartGateway defines the operations the cart service exposes. The
// application layer depends on this interface, not the concrete client.
type CartGateway interface {
	// Find retrieves the cart owned by the given identity.
	Find(ctx context.Context, identity entity.Identity) (*entity.Cart, error)

	// Add adds an item to the identity's cart, creating the cart if needed.
	Add(ctx context.Context, identity entity.Identity, item CartItemInput) error

	// Update replaces the quantity (and variant selection) of an existing line.
	Update(ctx context.Context, identity entity.Identity, item CartItemInput) error

	// Remove deletes the line for the given product entirely.
	Remove(ctx context.Context, identity entity.Identity, productID string) error

	// Clear empties the identity's cart.
	Clear(ctx context.Context, identity entity.Identity) error
}
