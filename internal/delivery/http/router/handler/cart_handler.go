package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// Get returns the resolved identity's cart with computed totals.
func (h *CartHandler) Get(c echo.Context) error {
	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.Fetch(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// AddItem adds a line to the cart and returns the refetched state.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.AddItem(c.Request().Context(), identity, &usecase.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Item added")
}

// UpdateQuantity sets a line's quantity. Values below 1 leave the cart
// untouched and simply echo the current state back.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.UpdateQuantity(c.Request().Context(), identity, req.ProductID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Quantity updated")
}

// RemoveItem deletes a line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Product id is required")
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.RemoveItem(c.Request().Context(), identity, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Item removed")
}
