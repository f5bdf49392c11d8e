package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
)

// VoteHelpfulInput carries a helpfulness vote together with the caller's
// identity evidence. Token is set for authenticated callers; SessionID and
// optionally GuestEmail for guests.
type VoteHelpfulInput struct {
	ReviewID   string `json:"reviewId" validate:"required"`
	Token      string `json:"-"`
	SessionID  string `json:"-"`
	GuestEmail string `json:"guestEmail,omitempty" validate:"omitempty,email"`
}

// VoteHelpfulOutput reports the updated helpful counter for the review.
type VoteHelpfulOutput struct {
	Success      bool `json:"success"`
	HelpfulCount int  `json:"helpfulCount"`
}

// ReviewUsecase exposes product review retrieval and helpfulness voting.
type ReviewUsecase interface {
	// ListReviews retrieves a page of reviews for a product.
	ListReviews(ctx context.Context, query gateway.ReviewQuery) (*entity.ReviewPage, error)

	// VoteHelpful records a helpfulness vote. The upstream call runs under
	// a short deadline so a slow review service never stalls the page.
	VoteHelpful(ctx context.Context, input VoteHelpfulInput) (*VoteHelpfulOutput, error)
}
