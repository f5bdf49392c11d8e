package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	reviewGateway gateway.ReviewGateway
	verifier      *auth.Verifier
	logger        *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	reviewGateway gateway.ReviewGateway,
	verifier *auth.Verifier,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		reviewGateway: reviewGateway,
		verifier:      verifier,
		logger:        logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListReviews retrieves a page of reviews for a product.
func (srv *reviewService) ListReviews(ctx context.Context, query gateway.ReviewQuery) (*entity.ReviewPage, error) {
	page, err := srv.reviewGateway.ListByProduct(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return page, nil
}

// VoteHelpful records a helpfulness vote. A voter must be identifiable: a
// bearer token or a session id. The gateway enforces its own short deadline.
func (srv *reviewService) VoteHelpful(ctx context.Context, input usecase.VoteHelpfulInput) (*usecase.VoteHelpfulOutput, error) {
	if input.Token == "" && input.SessionID == "" {
		return nil, errors.Wrap(domainerrors.ErrIdentityMissing, "vote without identity")
	}

	count, err := srv.reviewGateway.VoteHelpful(ctx, gateway.VoteInput{
		ReviewID:   input.ReviewID,
		Token:      input.Token,
		SessionID:  input.SessionID,
		GuestEmail: input.GuestEmail,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "review lookup")
		}
		if errors.Is(err, domainerrors.ErrUnauthorized) && input.Token != "" {
			// The cache must stop vouching for a token another service
			// just rejected.
			srv.verifier.Invalidate(input.Token)
		}

		return nil, errors.Wrap(err, "failed to vote")
	}

	srv.log(ctx).Debug("Helpful vote recorded", slog.String("review_id", input.ReviewID))

	return &usecase.VoteHelpfulOutput{Success: true, HelpfulCount: count}, nil
}
