package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrReviewNotFound is returned when the review service has no review for the id.
var ErrReviewNotFound = errors.New("review not found")

// ReviewQuery narrows a review listing for one product.
type ReviewQuery struct {
	ProductID string
	Page      int
	Limit     int
	Sort      string // "recent", "helpful" or "rating"
}

// VoteInput identifies the voter for a helpful vote: a bearer token for
// authenticated shoppers, a session id (plus optional guest email) otherwise.
type VoteInput struct {
	ReviewID   string
	Token      string
	SessionID  string
	GuestEmail string
}

// ReviewGateway defines the operations the review service exposes.
type ReviewGateway interface {
	// ListByProduct retrieves a page of reviews with rating aggregates.
	ListByProduct(ctx context.Context, query ReviewQuery) (*entity.ReviewPage, error)

	// VoteHelpful registers a helpful vote for a review and returns the
	// updated helpful counter.
	VoteHelpful(ctx context.Context, input VoteInput) (int, error)
}
