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
	"golang.org/x/sync/errgroup"
)

func newCheckoutFixture(t *testing.T) (usecase.CheckoutUsecase, *fakeCartGateway, *fakeShippingGateway, *fakePaymentGateway, *fakeOrderGateway) {
	t.Helper()

	cartGw := newFakeCartGateway()
	shippingGw := &fakeShippingGateway{}
	paymentGw := &fakePaymentGateway{}
	orderGw := newFakeOrderGateway()

	cartService := NewCartService(cartGw, testLogger())
	service := NewCheckoutService(cartService, cartGw, shippingGw, paymentGw, orderGw, testLogger())

	return service, cartGw, shippingGw, paymentGw, orderGw
}

func advanceToReview(t *testing.T, service usecase.CheckoutUsecase, identity entity.Identity) {
	t.Helper()
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	_, err = service.SubmitShipping(ctx, identity, &usecase.SubmitShippingInput{
		FullName:      "Jamie Doe",
		Country:       "US",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		StateProvince: "IL",
		PostalCode:    "62704",
		PhoneNumber:   "555-0100",
	})
	require.NoError(t, err)

	_, err = service.SubmitPayment(ctx, identity, &usecase.SubmitPaymentInput{
		CardName:   "Jamie Doe",
		CardNumber: "4242424242424242",
		CVV:        "123",
		ExpiryDate: "12/30",
	})
	require.NoError(t, err)
}

func TestCheckoutService_BeginRequiresNonEmptyCart(t *testing.T) {
	service, _, _, _, _ := newCheckoutFixture(t)

	_, err := service.Begin(context.Background(), entity.Identity{SessionID: "s1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))
}

func TestCheckoutService_HappyPathGuest(t *testing.T) {
	service, cartGw, shippingGw, paymentGw, orderGw := newCheckoutFixture(t)
	identity := entity.Identity{SessionID: "s1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 2, Price: 30})
	ctx := context.Background()

	view, err := service.Begin(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, entity.StepShipping, view.Step)
	assert.InDelta(t, 60.0, view.Totals.Subtotal, 0.001)

	view, err = service.SubmitShipping(ctx, identity, &usecase.SubmitShippingInput{
		FullName: "Jamie Doe", Country: "US", StreetAddress: "1 Main St",
		City: "Springfield", StateProvince: "IL", PostalCode: "62704", PhoneNumber: "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StepPayment, view.Step)
	assert.Equal(t, "ship-1", view.ShippingID)
	require.Len(t, shippingGw.created, 1)

	view, err = service.SubmitPayment(ctx, identity, &usecase.SubmitPaymentInput{
		CardName: "Jamie Doe", CardNumber: "4242424242424242", CVV: "123", ExpiryDate: "12/30",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StepReview, view.Step)
	assert.Equal(t, "pay-1", view.PaymentID)
	require.Len(t, paymentGw.created, 1)

	output, err := service.Submit(ctx, identity, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, "order-1", output.OrderID)
	assert.True(t, output.CartCleared)
	assert.Equal(t, 1, cartGw.clearCalls)

	require.Len(t, orderGw.created, 1)
	created := orderGw.created[0]
	assert.Equal(t, "s1", created.SessionID)
	assert.Empty(t, created.UserID)
	assert.Equal(t, "guest@example.com", created.GuestEmail)
	assert.InDelta(t, 60.0, created.Subtotal, 0.001)
	assert.InDelta(t, 6.0, created.Tax, 0.001)
	assert.Zero(t, created.ShippingCost)
}

func TestCheckoutService_PaymentBeforeShippingRejected(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{SessionID: "s1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	_, err = service.SubmitPayment(ctx, identity, &usecase.SubmitPaymentInput{
		CardName: "Jamie Doe", CardNumber: "4242424242424242", CVV: "123", ExpiryDate: "12/30",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShippingRequired))
}

func TestCheckoutService_GuestEmailGate(t *testing.T) {
	service, cartGw, _, _, orderGw := newCheckoutFixture(t)
	identity := entity.Identity{SessionID: "s1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	advanceToReview(t, service, identity)
	ctx := context.Background()

	_, err := service.Submit(ctx, identity, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGuestEmailRequired))

	_, err = service.Submit(ctx, identity, "not-an-email")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGuestEmailRequired))

	assert.Empty(t, orderGw.created)
}

func TestCheckoutService_AuthenticatedSubmitIgnoresGuestEmail(t *testing.T) {
	service, cartGw, _, _, orderGw := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	advanceToReview(t, service, identity)

	output, err := service.Submit(context.Background(), identity, "stray@example.com")

	require.NoError(t, err)
	assert.Equal(t, "order-1", output.OrderID)
	require.Len(t, orderGw.created, 1)
	assert.Equal(t, "u1", orderGw.created[0].UserID)
	assert.Empty(t, orderGw.created[0].GuestEmail)
	assert.Empty(t, orderGw.created[0].SessionID)
}

func TestCheckoutService_DoubleSubmitRejected(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	advanceToReview(t, service, identity)
	ctx := context.Background()

	_, err := service.Submit(ctx, identity, "")
	require.NoError(t, err)

	_, err = service.Submit(ctx, identity, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadySubmitted))
}

func TestCheckoutService_SubmitSurvivesCartClearFailure(t *testing.T) {
	service, cartGw, _, _, orderGw := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	advanceToReview(t, service, identity)
	cartGw.clearErr = errors.New("cart service down")

	output, err := service.Submit(context.Background(), identity, "")

	require.NoError(t, err)
	assert.Equal(t, "order-1", output.OrderID)
	assert.False(t, output.CartCleared)
	require.Len(t, orderGw.created, 1)
}

func TestCheckoutService_EditStepOnlyFromReview(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	_, err = service.EditStep(ctx, identity, entity.StepPayment)
	require.Error(t, err)

	advanceToReview(t, service, identity)

	view, err := service.EditStep(ctx, identity, entity.StepShipping)
	require.NoError(t, err)
	assert.Equal(t, entity.StepShipping, view.Step)
	assert.Equal(t, "ship-1", view.ShippingID)
}

func TestCheckoutService_AbandonDropsLocalStateOnly(t *testing.T) {
	service, cartGw, _, _, orderGw := newCheckoutFixture(t)
	identity := entity.Identity{SessionID: "s1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	require.NoError(t, service.Abandon(ctx, identity))

	_, err = service.Current(ctx, identity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutNotStarted))
	assert.Empty(t, orderGw.cancelled)
}

func TestCheckoutService_CancelRequiresPlacedOrder(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{SessionID: "s1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	err = service.Cancel(ctx, identity, "changed-mind")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoOrderToCancel))
}

func TestCheckoutService_CancelValidatesReason(t *testing.T) {
	service, cartGw, _, _, orderGw := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	advanceToReview(t, service, identity)
	ctx := context.Background()

	_, err := service.Submit(ctx, identity, "")
	require.NoError(t, err)

	err = service.Cancel(ctx, identity, "because")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCancellationReason))
	assert.Empty(t, orderGw.cancelled)

	err = service.Cancel(ctx, identity, "shipping-delay")
	require.NoError(t, err)
	assert.Equal(t, "shipping-delay", orderGw.cancelled["order-1"])
}

func TestCheckoutService_BeginResumesInFlightSession(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	_, err = service.SubmitShipping(ctx, identity, &usecase.SubmitShippingInput{
		FullName: "Jamie Doe", Country: "US", StreetAddress: "1 Main St",
		City: "Springfield", StateProvince: "IL", PostalCode: "62704", PhoneNumber: "555-0100",
	})
	require.NoError(t, err)

	view, err := service.Begin(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, entity.StepPayment, view.Step)
	assert.Equal(t, "ship-1", view.ShippingID)
}

func TestCheckoutService_CurrentSafeDuringTransitions(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{SessionID: "s1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	ctx := context.Background()

	_, err := service.Begin(ctx, identity)
	require.NoError(t, err)

	// Begin on an in-flight session refreshes the cart snapshot in place;
	// Current reads the same session concurrently.
	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			if _, err := service.Current(ctx, identity); err != nil {
				return err
			}
		}

		return nil
	})
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			if _, err := service.Begin(ctx, identity); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, g.Wait())
}

func TestCheckoutService_BeginAfterSubmitStartsFresh(t *testing.T) {
	service, cartGw, _, _, _ := newCheckoutFixture(t)
	identity := entity.Identity{UserID: "u1"}
	cartGw.seed(identity, entity.CartItem{ProductID: "p1", Quantity: 1, Price: 10})
	advanceToReview(t, service, identity)
	ctx := context.Background()

	_, err := service.Submit(ctx, identity, "")
	require.NoError(t, err)

	cartGw.seed(identity, entity.CartItem{ProductID: "p2", Quantity: 2, Price: 5})

	view, err := service.Begin(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, entity.StepShipping, view.Step)
	assert.Empty(t, view.OrderID)

	// The submitted order's cancellation window closed with the new checkout.
	err = service.Cancel(ctx, identity, "changed-mind")
	assert.True(t, errors.Is(err, domainerrors.ErrNoOrderToCancel))
}
