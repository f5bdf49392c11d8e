package storeapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"

	"github.com/pkg/errors"
)

// reviewClient implements gateway.ReviewGateway against the review service.
type reviewClient struct {
	*client

	voteTimeout time.Duration
}

// NewReviewGateway is the constructor for the review service client.
func NewReviewGateway(cfg *config.Config, logger *slog.Logger) gateway.ReviewGateway {
	return &reviewClient{
		client:      newClient("review", cfg.Services.Review, cfg.Upstream, logger),
		voteTimeout: cfg.Upstream.VoteTimeout,
	}
}

type wireReview struct {
	ID               string    `json:"_id"`
	ProductID        string    `json:"productId"`
	UserID           string    `json:"userId"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment"`
	Photos           []string  `json:"photos"`
	VerifiedPurchase bool      `json:"verifiedPurchase"`
	HelpfulVotes     int       `json:"helpfulVotes"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ListByProduct retrieves a page of reviews with rating aggregates.
func (c *reviewClient) ListByProduct(ctx context.Context, query gateway.ReviewQuery) (*entity.ReviewPage, error) {
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Sort != "" {
		values.Set("sort", query.Sort)
	}

	var result struct {
		Reviews            []wireReview   `json:"reviews"`
		AverageRating      float64        `json:"averageRating"`
		RatingDistribution map[string]int `json:"ratingDistribution"`
		Total              int            `json:"total"`
	}
	path := "/api/reviews/product/" + url.PathEscape(query.ProductID)
	if err := c.call(ctx, http.MethodGet, path, values, nil, nil, &result); err != nil {
		return nil, c.mapError(err)
	}

	page := &entity.ReviewPage{
		AverageRating:      result.AverageRating,
		Total:              result.Total,
		Reviews:            make([]entity.Review, 0, len(result.Reviews)),
		RatingDistribution: make(map[int]int, len(result.RatingDistribution)),
	}
	for _, wire := range result.Reviews {
		page.Reviews = append(page.Reviews, entity.Review{
			ID:               wire.ID,
			ProductID:        wire.ProductID,
			UserID:           wire.UserID,
			Rating:           wire.Rating,
			Title:            wire.Title,
			Comment:          wire.Comment,
			Photos:           wire.Photos,
			VerifiedPurchase: wire.VerifiedPurchase,
			HelpfulVotes:     wire.HelpfulVotes,
			CreatedAt:        wire.CreatedAt,
		})
	}
	for rating, count := range result.RatingDistribution {
		n, err := strconv.Atoi(rating)
		if err != nil {
			continue
		}
		page.RatingDistribution[n] = count
	}

	return page, nil
}

// VoteHelpful registers a helpful vote. This is the one upstream call with
// its own deadline: votes are fire-and-confirm from the product page and
// must not hang it.
func (c *reviewClient) VoteHelpful(ctx context.Context, input gateway.VoteInput) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.voteTimeout)
	defer cancel()

	headers := map[string]string{}
	if input.Token != "" {
		headers["Authorization"] = "Bearer " + input.Token
	}
	if input.SessionID != "" {
		headers["x-session-id"] = input.SessionID
	}

	var body any
	if input.GuestEmail != "" {
		body = map[string]string{"guestEmail": input.GuestEmail}
	}

	var result struct {
		HelpfulVotes int `json:"helpfulVotes"`
	}
	path := "/api/reviews/" + url.PathEscape(input.ReviewID) + "/helpful"
	if err := c.call(ctx, http.MethodPost, path, nil, headers, body, &result); err != nil {
		switch statusOf(err) {
		case http.StatusNotFound:
			return 0, errors.WithStack(gateway.ErrReviewNotFound)
		case http.StatusUnauthorized:
			return 0, errors.WithStack(domainerrors.ErrUnauthorized)
		}

		return 0, c.mapError(err)
	}

	return result.HelpfulVotes, nil
}
