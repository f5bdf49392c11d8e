package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/gateway"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

type voteRequest struct {
	GuestEmail string `json:"guestEmail" validate:"omitempty,email"`
}

// ListReviews returns a page of reviews for a product.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	query := gateway.ReviewQuery{
		ProductID: c.Param("productId"),
		Page:      intParam(c, "page"),
		Limit:     intParam(c, "limit"),
		Sort:      c.QueryParam("sort"),
	}

	page, err := h.uc.ListReviews(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// VoteHelpful records a helpfulness vote, identified by token or session id.
func (h *ReviewHandler) VoteHelpful(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vote input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.VoteHelpful(c.Request().Context(), usecase.VoteHelpfulInput{
		ReviewID:   c.Param("reviewId"),
		Token:      deliverycontext.GetToken(c),
		SessionID:  identity.SessionID,
		GuestEmail: req.GuestEmail,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Vote recorded")
}
