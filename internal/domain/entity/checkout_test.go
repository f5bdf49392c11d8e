package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_FlatShippingUnderThreshold(t *testing.T) {
	totals := ComputeTotals(40)

	assert.InDelta(t, 40.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 4.0, totals.Tax, 0.001)
	assert.InDelta(t, 5.99, totals.ShippingCost, 0.001)
	assert.InDelta(t, 49.99, totals.Total, 0.001)
}

func TestComputeTotals_FreeShippingOverThreshold(t *testing.T) {
	totals := ComputeTotals(50.01)

	assert.InDelta(t, 0.0, totals.ShippingCost, 0.001)
	assert.InDelta(t, 50.01+5.001, totals.Total, 0.001)
}

func TestComputeTotals_ExactlyAtThresholdStillPaysShipping(t *testing.T) {
	totals := ComputeTotals(50)

	assert.InDelta(t, 5.99, totals.ShippingCost, 0.001)
}

func TestValidCancellationReason(t *testing.T) {
	for _, reason := range CancellationReasons {
		assert.True(t, ValidCancellationReason(reason), reason)
	}

	assert.False(t, ValidCancellationReason(""))
	assert.False(t, ValidCancellationReason("changed_mind"))
	assert.False(t, ValidCancellationReason("no-reason"))
}

func TestIdentityKeyAndValidity(t *testing.T) {
	user := Identity{UserID: "u1"}
	guest := Identity{SessionID: "s1"}

	assert.Equal(t, "user:u1", user.Key())
	assert.Equal(t, "session:s1", guest.Key())
	assert.True(t, user.Valid())
	assert.True(t, guest.Valid())
	assert.True(t, user.IsAuthenticated())
	assert.False(t, guest.IsAuthenticated())

	assert.False(t, Identity{}.Valid())
	assert.False(t, Identity{UserID: "u1", SessionID: "s1"}.Valid())
}

func TestCartSubtotal(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", Quantity: 2, Price: 10.50},
		{ProductID: "p2", Quantity: 1, Price: 4.99},
	}}

	assert.InDelta(t, 25.99, cart.Subtotal(), 0.001)
}
