package impl

import (
	"context"
	"testing"

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

func newAuthFixture(fake *fakeAuthGateway) usecase.AuthUsecase {
	cfg := &config.Config{Session: &config.SessionConfig{}}
	verifier := auth.NewVerifier(fake, cfg, testLogger())

	return NewAuthService(fake, verifier, testLogger())
}

func TestAuthService_LoginSuccessFiresIdentitySwitch(t *testing.T) {
	fake := &fakeAuthGateway{
		result: &gateway.AuthResult{Token: "tok-1", User: &entity.User{ID: "u1", Email: "a@example.com"}},
	}
	service := newAuthFixture(fake)

	var retired []string
	service.OnIdentitySwitch(func(_ context.Context, sessionID string) {
		retired = append(retired, sessionID)
	})

	output, err := service.Login(context.Background(), &usecase.LoginInput{
		Email:     "a@example.com",
		Password:  "secret",
		SessionID: "s-old",
	})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "tok-1", output.Token)
	assert.Equal(t, []string{"s-old"}, retired)
}

func TestAuthService_LoginWithoutSessionSkipsHook(t *testing.T) {
	fake := &fakeAuthGateway{
		result: &gateway.AuthResult{Token: "tok-1", User: &entity.User{ID: "u1"}},
	}
	service := newAuthFixture(fake)

	var fired bool
	service.OnIdentitySwitch(func(context.Context, string) { fired = true })

	_, err := service.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.False(t, fired)
}

func TestAuthService_RejectedCredentialsAreAResultNotAnError(t *testing.T) {
	fake := &fakeAuthGateway{
		loginErr: domainerrors.NewUpstreamError("auth", 401, "Invalid email or password", ""),
	}
	service := newAuthFixture(fake)

	var fired bool
	service.OnIdentitySwitch(func(context.Context, string) { fired = true })

	output, err := service.Login(context.Background(), &usecase.LoginInput{
		Email:     "a@example.com",
		Password:  "wrong",
		SessionID: "s-old",
	})

	require.NoError(t, err)
	assert.False(t, output.Success)
	assert.Equal(t, "Invalid email or password", output.Message)
	assert.Empty(t, output.Token)
	assert.False(t, fired, "rejected login must not retire the session")
}

func TestAuthService_UpstreamOutageIsAnError(t *testing.T) {
	fake := &fakeAuthGateway{
		loginErr: domainerrors.NewUnavailableError("auth", errors.New("connection refused")),
	}
	service := newAuthFixture(fake)

	_, err := service.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: "pw"})

	require.Error(t, err)
}

func TestAuthService_RegisterSuccess(t *testing.T) {
	fake := &fakeAuthGateway{
		result: &gateway.AuthResult{Token: "tok-2", User: &entity.User{ID: "u2"}},
	}
	service := newAuthFixture(fake)

	output, err := service.Register(context.Background(), &usecase.RegisterInput{
		Email:     "b@example.com",
		Password:  "longenough",
		FirstName: "Sam",
		LastName:  "Lee",
		SessionID: "s-old",
	})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "tok-2", output.Token)
}

func TestAuthService_LogoutSwallowsUpstreamFailure(t *testing.T) {
	fake := &fakeAuthGateway{logoutErr: errors.New("auth service down")}
	service := newAuthFixture(fake)

	service.Logout(context.Background(), "tok-1")

	assert.Equal(t, 1, fake.logoutCalls)
}

func TestAuthService_CheckAuthMapsInvalidTokenToAnonymous(t *testing.T) {
	fake := &fakeAuthGateway{tokens: map[string]*entity.User{
		"tok-good": {ID: "u1"},
	}}
	service := newAuthFixture(fake)
	ctx := context.Background()

	user, err := service.CheckAuth(ctx, "tok-good")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	user, err = service.CheckAuth(ctx, "tok-bad")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = service.CheckAuth(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, user)
}
