package impl

import (
	"context"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReviewGateway answers votes from a fixed table.
type fakeReviewGateway struct {
	page      *entity.ReviewPage
	voteCount int
	voteErr   error
	votes     int
}

func (f *fakeReviewGateway) ListByProduct(context.Context, gateway.ReviewQuery) (*entity.ReviewPage, error) {
	return f.page, nil
}

func (f *fakeReviewGateway) VoteHelpful(context.Context, gateway.VoteInput) (int, error) {
	if f.voteErr != nil {
		return 0, f.voteErr
	}
	f.votes++

	return f.voteCount, nil
}

func newReviewFixture(reviews *fakeReviewGateway, authFake *fakeAuthGateway) (usecase.ReviewUsecase, *auth.Verifier) {
	cfg := &config.Config{Session: &config.SessionConfig{VerifyCacheTTL: 5 * time.Minute}}
	verifier := auth.NewVerifier(authFake, cfg, testLogger())

	return NewReviewService(reviews, verifier, testLogger()), verifier
}

func TestReviewService_VoteHelpfulReturnsCount(t *testing.T) {
	reviews := &fakeReviewGateway{voteCount: 4}
	srv, _ := newReviewFixture(reviews, &fakeAuthGateway{})

	out, err := srv.VoteHelpful(context.Background(), usecase.VoteHelpfulInput{
		ReviewID:  "rev-1",
		SessionID: "11111111-2222-4333-8444-555555555555",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 4, out.HelpfulCount)
}

func TestReviewService_VoteWithoutIdentityRejected(t *testing.T) {
	srv, _ := newReviewFixture(&fakeReviewGateway{}, &fakeAuthGateway{})

	_, err := srv.VoteHelpful(context.Background(), usecase.VoteHelpfulInput{ReviewID: "rev-1"})
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityMissing))
}

func TestReviewService_MissingReviewMapsToNotFound(t *testing.T) {
	reviews := &fakeReviewGateway{voteErr: errors.WithStack(gateway.ErrReviewNotFound)}
	srv, _ := newReviewFixture(reviews, &fakeAuthGateway{})

	_, err := srv.VoteHelpful(context.Background(), usecase.VoteHelpfulInput{
		ReviewID:  "rev-gone",
		SessionID: "11111111-2222-4333-8444-555555555555",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestReviewService_UnauthorizedVoteEvictsCachedToken(t *testing.T) {
	authFake := &fakeAuthGateway{tokens: map[string]*entity.User{
		"tok-1": {ID: "u1"},
	}}
	reviews := &fakeReviewGateway{voteErr: errors.WithStack(domainerrors.ErrUnauthorized)}
	srv, verifier := newReviewFixture(reviews, authFake)

	// Warm the cache, then confirm a repeat verification stays local.
	_, err := verifier.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	_, err = verifier.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, 1, authFake.verifyCalls)

	_, err = srv.VoteHelpful(context.Background(), usecase.VoteHelpfulInput{
		ReviewID: "rev-1",
		Token:    "tok-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	// The rejected token must be re-verified upstream on next use.
	_, err = verifier.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 2, authFake.verifyCalls)
}
