package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

func newAuthService(users *memUserRepo, tokens *memTokenRepo, dispatcher events.Dispatcher) *service.AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenTTLHours:    1,
			BcryptCost:       4,
			RegistrationRole: "USER",
		},
	}
	return service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   users,
		TokenRepo:  tokens,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func TestRegister_IssuesAndPersistsToken(t *testing.T) {
	users, tokens := newMemUserRepo(), newMemTokenRepo()
	dispatcher := &recordingDispatcher{}
	svc := newAuthService(users, tokens, dispatcher)
	ctx := context.Background()

	user, raw, _, err := svc.Register(ctx, "Ann", "Lee", "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, domain.RoleUser, user.Role)

	stored, err := tokens.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, raw, stored.Token)
	assert.Equal(t, domain.TokenKindBearer, stored.Kind)

	recorded := dispatcher.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.EventUserRegistered, recorded[0].Type)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users, tokens := newMemUserRepo(), newMemTokenRepo()
	svc := newAuthService(users, tokens, &recordingDispatcher{})
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ann", "Lee", "a@x.com", "pw123456")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Bob", "Lee", "a@x.com", "otherpw1")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)

	assert.Equal(t, 1, tokens.count(), "only the first registration holds a token")
}

func TestLogin_RotatesToken(t *testing.T) {
	users, tokens := newMemUserRepo(), newMemTokenRepo()
	svc := newAuthService(users, tokens, &recordingDispatcher{})
	ctx := context.Background()

	user, first, _, err := svc.Register(ctx, "Ann", "Lee", "a@x.com", "pw123456")
	require.NoError(t, err)

	_, second, _, err := svc.Login(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	stored, err := tokens.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second, stored.Token, "store holds the latest token")
	assert.Equal(t, 1, tokens.count(), "prior token was revoked on reissue")

	_, err = tokens.GetByToken(ctx, first)
	assert.Error(t, err, "old token no longer live")
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newMemUserRepo(), newMemTokenRepo(), &recordingDispatcher{})

	_, _, _, err := svc.Login(context.Background(), "nobody@x.com", "pw123456")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "AUTH_ERROR", domainErr.Code)
	assert.Equal(t, apperrors.AuthReasonEmailNotFound, domainErr.Details["reason"])
}

func TestLogin_WrongPasswordLeavesTokenUntouched(t *testing.T) {
	users, tokens := newMemUserRepo(), newMemTokenRepo()
	svc := newAuthService(users, tokens, &recordingDispatcher{})
	ctx := context.Background()

	user, first, _, err := svc.Register(ctx, "Ann", "Lee", "a@x.com", "pw123456")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "a@x.com", "wrongpw")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "AUTH_ERROR", domainErr.Code)
	assert.Equal(t, apperrors.AuthReasonInvalidPassword, domainErr.Details["reason"])

	stored, err := tokens.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored.Token, "failed login must not mutate the store")
}

func TestLogout_Idempotent(t *testing.T) {
	users, tokens := newMemUserRepo(), newMemTokenRepo()
	svc := newAuthService(users, tokens, &recordingDispatcher{})
	ctx := context.Background()

	_, raw, _, err := svc.Register(ctx, "Ann", "Lee", "a@x.com", "pw123456")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, raw))
	assert.Equal(t, 0, tokens.count())

	require.NoError(t, svc.Logout(ctx, raw), "second logout is a no-op")
	require.NoError(t, svc.Logout(ctx, ""), "missing token is a no-op")
	assert.Equal(t, 0, tokens.count())
}

func TestLogin_SequenceKeepsSingleLiveToken(t *testing.T) {
	users, tokens := newMemUserRepo(), newMemTokenRepo()
	svc := newAuthService(users, tokens, &recordingDispatcher{})
	ctx := context.Background()

	user, latest, _, err := svc.Register(ctx, "Ann", "Lee", "a@x.com", "pw123456")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, raw, _, err := svc.Login(ctx, "a@x.com", "pw123456")
		require.NoError(t, err)
		latest = raw
	}

	assert.Equal(t, 1, tokens.count())
	stored, err := tokens.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, latest, stored.Token)
}
