package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_ConfirmationEnrichesLines(t *testing.T) {
	orderGw := newFakeOrderGateway()
	orderGw.orders["order-1"] = &entity.Order{
		ID: "order-1",
		Items: []entity.OrderItem{
			{ProductID: "p1", Quantity: 2, Price: 30},
			{ProductID: "p-gone", Quantity: 1, Price: 5},
		},
		Total: 65,
	}
	catalogGw := &fakeCatalogGateway{products: map[string]entity.Product{
		"p1": {ID: "p1", Name: "Linen Shirt", Slug: "linen-shirt"},
	}}
	service := NewOrderService(orderGw, catalogGw, testLogger())

	output, err := service.Confirmation(context.Background(), "order-1")

	require.NoError(t, err)
	require.Len(t, output.Items, 2)
	require.NotNil(t, output.Items[0].Product)
	assert.Equal(t, "Linen Shirt", output.Items[0].Product.Name)
	assert.Nil(t, output.Items[1].Product, "vanished products stay unenriched")
}

func TestOrderService_ConfirmationUnknownOrder(t *testing.T) {
	service := NewOrderService(newFakeOrderGateway(), &fakeCatalogGateway{}, testLogger())

	_, err := service.Confirmation(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
