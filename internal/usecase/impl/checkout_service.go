package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// checkoutService implements the CheckoutUsecase interface. It drives the
// shipping → payment → review → submitted flow over an in-memory session
// store, serializing all transitions per identity.
type checkoutService struct {
	cartUsecase     usecase.CartUsecase
	cartGateway     gateway.CartGateway
	shippingGateway gateway.ShippingGateway
	paymentGateway  gateway.PaymentGateway
	orderGateway    gateway.OrderGateway
	logger          *slog.Logger

	store    *checkoutStore
	locks    *keyedMutex
	validate *validator.Validate
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	cartUsecase usecase.CartUsecase,
	cartGateway gateway.CartGateway,
	shippingGateway gateway.ShippingGateway,
	paymentGateway gateway.PaymentGateway,
	orderGateway gateway.OrderGateway,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		cartUsecase:     cartUsecase,
		cartGateway:     cartGateway,
		shippingGateway: shippingGateway,
		paymentGateway:  paymentGateway,
		orderGateway:    orderGateway,
		logger:          logger,
		store:           newCheckoutStore(),
		locks:           newKeyedMutex(),
		validate:        validator.New(),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Begin starts a checkout, or resumes the one already in progress for the
// identity. The cart snapshot taken here rides along for display; the cart
// service stays authoritative until submission.
func (srv *checkoutService) Begin(ctx context.Context, identity entity.Identity) (*usecase.CheckoutView, error) {
	if !identity.Valid() {
		return nil, errors.Wrap(domainerrors.ErrIdentityMissing, "checkout without identity")
	}

	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	// 1. Resume an in-flight session if one exists. A submitted session is
	// retired instead: starting a new checkout ends the window in which the
	// previous order could be cancelled through this flow.
	if session := srv.store.get(identity); session != nil {
		if session.Step != entity.StepSubmitted {
			srv.refreshCart(ctx, session)

			return view(session), nil
		}

		srv.store.drop(identity)
		srv.log(ctx).Info("Retiring submitted checkout",
			slog.String("identity", identity.Key()),
			slog.String("order_id", session.OrderID))
	}

	// 2. Fetch the cart; an empty cart cannot enter checkout
	cartOut, err := srv.cartUsecase.Fetch(ctx, identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch cart for checkout")
	}
	if len(cartOut.Cart.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "cannot begin checkout")
	}

	session := &entity.CheckoutSession{
		Identity:  identity,
		Step:      entity.StepShipping,
		Cart:      cartOut.Cart,
		Totals:    cartOut.Totals,
		CreatedAt: time.Now(),
	}
	srv.store.put(session)

	srv.log(ctx).Info("Checkout started",
		slog.String("identity", identity.Key()),
		slog.Int("items", len(cartOut.Cart.Items)))

	return view(session), nil
}

// Current returns the in-progress checkout without side effects. It still
// takes the identity lock: the view reads fields the submit operations
// mutate in place.
func (srv *checkoutService) Current(ctx context.Context, identity entity.Identity) (*usecase.CheckoutView, error) {
	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	session := srv.store.get(identity)
	if session == nil {
		return nil, errors.Wrap(domainerrors.ErrCheckoutNotStarted, "no checkout in progress")
	}

	return view(session), nil
}

// SubmitShipping stores the address upstream and advances to the payment
// step. Resubmitting from the shipping step replaces the previous address.
func (srv *checkoutService) SubmitShipping(ctx context.Context, identity entity.Identity, input *usecase.SubmitShippingInput) (*usecase.CheckoutView, error) {
	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	session := srv.store.get(identity)
	if session == nil {
		return nil, errors.Wrap(domainerrors.ErrCheckoutNotStarted, "no checkout in progress")
	}
	if session.Step != entity.StepShipping {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("shipping can only be submitted from the shipping step"), "step mismatch")
	}

	record, err := srv.shippingGateway.Create(ctx, gateway.ShippingInput{
		FullName:      input.FullName,
		Country:       input.Country,
		StreetAddress: input.StreetAddress,
		Apartment:     input.Apartment,
		City:          input.City,
		StateProvince: input.StateProvince,
		PostalCode:    input.PostalCode,
		PhoneNumber:   input.PhoneNumber,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store shipping address")
	}

	session.ShippingID = record.ID
	session.Step = entity.StepPayment
	srv.store.put(session)

	srv.log(ctx).Info("Shipping submitted",
		slog.String("identity", identity.Key()),
		slog.String("shipping_id", record.ID))

	return view(session), nil
}

// SubmitPayment stores the card upstream and advances to the review step.
func (srv *checkoutService) SubmitPayment(ctx context.Context, identity entity.Identity, input *usecase.SubmitPaymentInput) (*usecase.CheckoutView, error) {
	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	session := srv.store.get(identity)
	if session == nil {
		return nil, errors.Wrap(domainerrors.ErrCheckoutNotStarted, "no checkout in progress")
	}
	if session.ShippingID == "" {
		return nil, errors.Wrap(domainerrors.ErrShippingRequired, "payment before shipping")
	}
	if session.Step != entity.StepPayment {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("payment can only be submitted from the payment step"), "step mismatch")
	}

	record, err := srv.paymentGateway.Create(ctx, gateway.PaymentInput{
		CardName:   input.CardName,
		CardNumber: input.CardNumber,
		CVV:        input.CVV,
		ExpiryDate: input.ExpiryDate,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store payment method")
	}

	session.PaymentID = record.ID
	session.Step = entity.StepReview
	srv.store.put(session)

	srv.log(ctx).Info("Payment submitted",
		slog.String("identity", identity.Key()),
		slog.String("payment_id", record.ID))

	return view(session), nil
}

// EditStep backtracks from review to shipping or payment. The stored ids
// stay on the session so the form can be prefilled; resubmission replaces
// them.
func (srv *checkoutService) EditStep(ctx context.Context, identity entity.Identity, step entity.CheckoutStep) (*usecase.CheckoutView, error) {
	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	session := srv.store.get(identity)
	if session == nil {
		return nil, errors.Wrap(domainerrors.ErrCheckoutNotStarted, "no checkout in progress")
	}
	if session.Step != entity.StepReview {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("editing is only possible from the review step"), "step mismatch")
	}
	if step != entity.StepShipping && step != entity.StepPayment {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("can only edit the shipping or payment step"), "invalid target step")
	}

	session.Step = step
	srv.store.put(session)

	return view(session), nil
}

// Submit places the order after explicit confirmation on the review step.
// Guests must supply a syntactically valid email, authenticated shoppers
// must not. The cart clear afterwards is best-effort: the order stands even
// if it fails.
func (srv *checkoutService) Submit(ctx context.Context, identity entity.Identity, guestEmail string) (*usecase.SubmitOutput, error) {
	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	session := srv.store.get(identity)
	if session == nil {
		return nil, errors.Wrap(domainerrors.ErrCheckoutNotStarted, "no checkout in progress")
	}
	if session.Step == entity.StepSubmitted {
		return nil, errors.Wrap(domainerrors.ErrAlreadySubmitted, "order already placed")
	}
	if session.Step != entity.StepReview {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("submission is only possible from the review step"), "step mismatch")
	}
	if session.ShippingID == "" {
		return nil, errors.Wrap(domainerrors.ErrShippingRequired, "cannot submit")
	}
	if session.PaymentID == "" {
		return nil, errors.Wrap(domainerrors.ErrPaymentRequired, "cannot submit")
	}

	// 1. Enforce the guest email gate
	if identity.IsAuthenticated() {
		guestEmail = ""
	} else {
		if srv.validate.Var(guestEmail, "required,email") != nil {
			return nil, errors.Wrap(domainerrors.ErrGuestEmailRequired, "cannot submit")
		}
	}

	// 2. Take a fresh cart snapshot so the order reflects last-second edits
	srv.refreshCart(ctx, session)
	if len(session.Cart.Items) == 0 {
		srv.store.drop(identity)

		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "cart emptied before submission")
	}

	items := make([]entity.OrderItem, 0, len(session.Cart.Items))
	for _, line := range session.Cart.Items {
		items = append(items, entity.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Price:     line.Price,
			ImageURL:  line.ImageURL,
		})
	}

	// 3. Create the order
	orderID, err := srv.orderGateway.Create(ctx, gateway.CreateOrderInput{
		UserID:       identity.UserID,
		SessionID:    identity.SessionID,
		GuestEmail:   guestEmail,
		ShippingID:   session.ShippingID,
		PaymentID:    session.PaymentID,
		Items:        items,
		Subtotal:     session.Totals.Subtotal,
		Tax:          session.Totals.Tax,
		ShippingCost: session.Totals.ShippingCost,
		Total:        session.Totals.Total,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit order")
	}

	session.OrderID = orderID
	session.Step = entity.StepSubmitted
	srv.store.put(session)

	// 4. Best-effort cart clear; the order stands regardless
	cleared := true
	if err := srv.cartGateway.Clear(ctx, identity); err != nil {
		cleared = false
		srv.log(ctx).Warn("Cart clear after submission failed",
			slog.String("identity", identity.Key()),
			slog.String("order_id", orderID),
			slog.Any("error", err))
	}

	srv.log(ctx).Info("Order submitted",
		slog.String("identity", identity.Key()),
		slog.String("order_id", orderID))

	return &usecase.SubmitOutput{OrderID: orderID, CartCleared: cleared}, nil
}

// Abandon discards the checkout session locally. Shipping and payment
// records already stored upstream are left alone; nothing references them.
func (srv *checkoutService) Abandon(ctx context.Context, identity entity.Identity) error {
	srv.store.drop(identity)
	srv.log(ctx).Debug("Checkout abandoned", slog.String("identity", identity.Key()))

	return nil
}

// Cancel cancels the already-submitted order of this checkout. It requires
// an order id on the session and a reason from the fixed set; before
// submission the right operation is Abandon.
func (srv *checkoutService) Cancel(ctx context.Context, identity entity.Identity, reason string) error {
	unlock := srv.locks.lock(identity.Key())
	defer unlock()

	session := srv.store.get(identity)
	if session == nil || session.OrderID == "" {
		return errors.Wrap(domainerrors.ErrNoOrderToCancel, "cannot cancel")
	}
	if !entity.ValidCancellationReason(reason) {
		return errors.Wrap(domainerrors.ErrCancellationReason, "cannot cancel")
	}

	if err := srv.orderGateway.Cancel(ctx, session.OrderID, reason); err != nil {
		return errors.Wrap(err, "failed to cancel order")
	}

	srv.log(ctx).Info("Order cancelled",
		slog.String("identity", identity.Key()),
		slog.String("order_id", session.OrderID),
		slog.String("reason", reason))

	srv.store.drop(identity)

	return nil
}

// refreshCart replaces the session's cart snapshot with the upstream state.
// A fetch failure keeps the existing snapshot.
func (srv *checkoutService) refreshCart(ctx context.Context, session *entity.CheckoutSession) {
	cartOut, err := srv.cartUsecase.Fetch(ctx, session.Identity)
	if err != nil {
		srv.log(ctx).Warn("Cart refresh during checkout failed",
			slog.String("identity", session.Identity.Key()),
			slog.Any("error", err))

		return
	}

	session.Cart = cartOut.Cart
	session.Totals = cartOut.Totals
	srv.store.put(session)
}

func view(session *entity.CheckoutSession) *usecase.CheckoutView {
	return &usecase.CheckoutView{
		Step:       session.Step,
		ShippingID: session.ShippingID,
		PaymentID:  session.PaymentID,
		Items:      session.Cart.Items,
		Totals:     session.Totals,
		OrderID:    session.OrderID,
	}
}
