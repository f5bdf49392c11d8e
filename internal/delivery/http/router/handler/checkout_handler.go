package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for checkout handlers.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: logger}
}

type shippingRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Country       string `json:"country" validate:"required"`
	StreetAddress string `json:"streetAddress" validate:"required"`
	Apartment     string `json:"apartment"`
	City          string `json:"city" validate:"required"`
	StateProvince string `json:"stateProvince" validate:"required"`
	PostalCode    string `json:"postalCode" validate:"required"`
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
}

type paymentRequest struct {
	CardName   string `json:"cardName" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required,min=12"`
	CVV        string `json:"cvv" validate:"required,min=3,max=4"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
}

type editStepRequest struct {
	Step string `json:"step" validate:"required,oneof=shipping payment"`
}

type submitRequest struct {
	GuestEmail string `json:"guestEmail" validate:"omitempty,email"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Begin starts or resumes a checkout for the resolved identity.
func (h *CheckoutHandler) Begin(c echo.Context) error {
	identity, _ := deliverycontext.GetIdentity(c)

	view, err := h.uc.Begin(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Checkout started")
}

// Current returns the in-progress checkout.
func (h *CheckoutHandler) Current(c echo.Context) error {
	identity, _ := deliverycontext.GetIdentity(c)

	view, err := h.uc.Current(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// SubmitShipping handles the shipping step form.
func (h *CheckoutHandler) SubmitShipping(c echo.Context) error {
	var req shippingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shipping input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	view, err := h.uc.SubmitShipping(c.Request().Context(), identity, &usecase.SubmitShippingInput{
		FullName:      req.FullName,
		Country:       req.Country,
		StreetAddress: req.StreetAddress,
		Apartment:     req.Apartment,
		City:          req.City,
		StateProvince: req.StateProvince,
		PostalCode:    req.PostalCode,
		PhoneNumber:   req.PhoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Shipping saved")
}

// SubmitPayment handles the payment step form.
func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	view, err := h.uc.SubmitPayment(c.Request().Context(), identity, &usecase.SubmitPaymentInput{
		CardName:   req.CardName,
		CardNumber: req.CardNumber,
		CVV:        req.CVV,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Payment saved")
}

// EditStep backtracks from review to an earlier step.
func (h *CheckoutHandler) EditStep(c echo.Context) error {
	var req editStepRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid step input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	view, err := h.uc.EditStep(c.Request().Context(), identity, entity.CheckoutStep(req.Step))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// Submit places the order after the review-step confirmation.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid submission input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.Submit(c.Request().Context(), identity, req.GuestEmail)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order placed")
}

// Abandon discards the checkout without touching any placed order.
func (h *CheckoutHandler) Abandon(c echo.Context) error {
	identity, _ := deliverycontext.GetIdentity(c)

	if err := h.uc.Abandon(c.Request().Context(), identity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Checkout abandoned")
}

// Cancel cancels the order placed by this checkout, with a reason.
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancellation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	if err := h.uc.Cancel(c.Request().Context(), identity, req.Reason); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order cancelled")
}
