package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// cartService implements the CartUsecase interface. Mutations are serialized
// per identity so concurrent tabs cannot interleave add/update/remove against
// the same cart; concurrent reads of one cart collapse into a single upstream
// call.
type cartService struct {
	cartGateway gateway.CartGateway
	logger      *slog.Logger

	fetchGroup singleflight.Group
	locks      *keyedMutex
}

// NewCartService is the constructor for cartService.
func NewCartService(
	cartGateway gateway.CartGateway,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		cartGateway: cartGateway,
		logger:      logger,
		locks:       newKeyedMutex(),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Fetch retrieves the identity's cart. A missing cart is an empty cart.
// Concurrent fetches for the same identity share one upstream request.
func (srv *cartService) Fetch(ctx context.Context, identity entity.Identity) (*usecase.CartOutput, error) {
	if !identity.Valid() {
		return nil, errors.Wrap(domainerrors.ErrIdentityMissing, "cart fetch without identity")
	}

	result, err, _ := srv.fetchGroup.Do(identity.Key(), func() (any, error) {
		return srv.fetch(ctx, identity)
	})
	if err != nil {
		return nil, err
	}

	return result.(*usecase.CartOutput), nil
}

func (srv *cartService) fetch(ctx context.Context, identity entity.Identity) (*usecase.CartOutput, error) {
	cart, err := srv.cartGateway.Find(ctx, identity)
	if err != nil {
		if errors.Is(err, gateway.ErrCartNotFound) {
			cart = &entity.Cart{Items: []entity.CartItem{}}
		} else {
			return nil, errors.Wrap(err, "failed to fetch cart")
		}
	}

	return &usecase.CartOutput{
		Cart:   cart,
		Totals: entity.ComputeTotals(cart.Subtotal()),
	}, nil
}

// AddItem adds a line to the cart and returns the refetched state. The
// upstream owns the merge: adding an existing product increments its line.
func (srv *cartService) AddItem(ctx context.Context, identity entity.Identity, input *usecase.AddItemInput) (*usecase.CartOutput, error) {
	if !identity.Valid() {
		return nil, errors.Wrap(domainerrors.ErrIdentityMissing, "cart mutation without identity")
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	srv.log(ctx).Debug("Adding cart item",
		slog.String("identity", identity.Key()),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity))

	// 1. Fire the mutation
	err := srv.cartGateway.Add(ctx, identity, gateway.CartItemInput{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Size:      input.Size,
		Color:     input.Color,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add cart item")
	}

	// 2. Refetch the authoritative state
	return srv.fetch(ctx, identity)
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are a no-op that
// returns the current cart unchanged; removal is an explicit operation.
func (srv *cartService) UpdateQuantity(ctx context.Context, identity entity.Identity, productID string, quantity int) (*usecase.CartOutput, error) {
	if !identity.Valid() {
		return nil, errors.Wrap(domainerrors.ErrIdentityMissing, "cart mutation without identity")
	}
	if quantity < 1 {
		return srv.Fetch(ctx, identity)
	}

	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	srv.log(ctx).Debug("Updating cart quantity",
		slog.String("identity", identity.Key()),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity))

	err := srv.cartGateway.Update(ctx, identity, gateway.CartItemInput{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update cart quantity")
	}

	return srv.fetch(ctx, identity)
}

// RemoveItem deletes a line entirely and returns the refetched state.
func (srv *cartService) RemoveItem(ctx context.Context, identity entity.Identity, productID string) (*usecase.CartOutput, error) {
	if !identity.Valid() {
		return nil, errors.Wrap(domainerrors.ErrIdentityMissing, "cart mutation without identity")
	}

	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	srv.log(ctx).Debug("Removing cart item",
		slog.String("identity", identity.Key()),
		slog.String("product_id", productID))

	if err := srv.cartGateway.Remove(ctx, identity, productID); err != nil {
		return nil, errors.Wrap(err, "failed to remove cart item")
	}

	return srv.fetch(ctx, identity)
}
