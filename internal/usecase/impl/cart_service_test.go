package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_FetchMissingCartIsEmpty(t *testing.T) {
	fake := newFakeCartGateway()
	service := NewCartService(fake, testLogger())

	output, err := service.Fetch(context.Background(), entity.Identity{SessionID: "s1"})

	require.NoError(t, err)
	assert.Empty(t, output.Cart.Items)
	assert.Zero(t, output.Totals.Subtotal)
}

func TestCartService_FetchComputesTotals(t *testing.T) {
	fake := newFakeCartGateway()
	identity := entity.Identity{UserID: "u1"}
	fake.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 2, Price: 30})
	service := NewCartService(fake, testLogger())

	output, err := service.Fetch(context.Background(), identity)

	require.NoError(t, err)
	assert.InDelta(t, 60.0, output.Totals.Subtotal, 0.001)
	assert.InDelta(t, 6.0, output.Totals.Tax, 0.001)
	assert.Zero(t, output.Totals.ShippingCost)
}

func TestCartService_FetchRejectsMissingIdentity(t *testing.T) {
	service := NewCartService(newFakeCartGateway(), testLogger())

	_, err := service.Fetch(context.Background(), entity.Identity{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityMissing))
}

func TestCartService_AddItemRefetches(t *testing.T) {
	fake := newFakeCartGateway()
	identity := entity.Identity{SessionID: "s1"}
	service := NewCartService(fake, testLogger())

	output, err := service.AddItem(context.Background(), identity, &usecase.AddItemInput{
		ProductID: "p1",
		Quantity:  3,
		Size:      "M",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fake.addCalls)
	assert.Equal(t, 1, fake.findCalls)
	require.Len(t, output.Cart.Items, 1)
	assert.Equal(t, 3, output.Cart.Items[0].Quantity)
}

func TestCartService_AddItemDefaultsQuantityToOne(t *testing.T) {
	fake := newFakeCartGateway()
	identity := entity.Identity{SessionID: "s1"}
	service := NewCartService(fake, testLogger())

	output, err := service.AddItem(context.Background(), identity, &usecase.AddItemInput{ProductID: "p1"})

	require.NoError(t, err)
	require.Len(t, output.Cart.Items, 1)
	assert.Equal(t, 1, output.Cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantityBelowOneIsNoOp(t *testing.T) {
	fake := newFakeCartGateway()
	identity := entity.Identity{UserID: "u1"}
	fake.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 2, Price: 5})
	service := NewCartService(fake, testLogger())

	output, err := service.UpdateQuantity(context.Background(), identity, "p1", 0)

	require.NoError(t, err)
	assert.Zero(t, fake.updateCalls)
	require.Len(t, output.Cart.Items, 1)
	assert.Equal(t, 2, output.Cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	fake := newFakeCartGateway()
	identity := entity.Identity{UserID: "u1"}
	fake.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 2, Price: 5})
	service := NewCartService(fake, testLogger())

	output, err := service.UpdateQuantity(context.Background(), identity, "p1", 7)

	require.NoError(t, err)
	assert.Equal(t, 1, fake.updateCalls)
	assert.Equal(t, 7, output.Cart.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	fake := newFakeCartGateway()
	identity := entity.Identity{UserID: "u1"}
	fake.seed(identity,
		entity.CartItem{ProductID: "p1", Quantity: 1, Price: 5},
		entity.CartItem{ProductID: "p2", Quantity: 1, Price: 8},
	)
	service := NewCartService(fake, testLogger())

	output, err := service.RemoveItem(context.Background(), identity, "p1")

	require.NoError(t, err)
	require.Len(t, output.Cart.Items, 1)
	assert.Equal(t, "p2", output.Cart.Items[0].ProductID)
}

func TestCartService_MutationFailureSurfaces(t *testing.T) {
	fake := newFakeCartGateway()
	fake.failNext = errors.New("cart service down")
	service := NewCartService(fake, testLogger())

	_, err := service.AddItem(context.Background(), entity.Identity{SessionID: "s1"}, &usecase.AddItemInput{ProductID: "p1", Quantity: 1})

	require.Error(t, err)
	assert.Equal(t, 1, fake.addCalls)
	assert.Zero(t, fake.findCalls)
}
