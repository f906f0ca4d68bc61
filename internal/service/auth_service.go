package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AuthService coordinates registration, login and logout flows and owns
// the one-live-token-per-user invariant.
type AuthService struct {
	users       repository.UserRepository
	tokenStore  repository.TokenRepository
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
	defaultRole domain.Role
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	TokenRepo  repository.TokenRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	role := domain.Role(cfg.Auth.RegistrationRole)
	if !role.Valid() {
		role = domain.RoleUser
	}
	return &AuthService{
		users:       deps.UserRepo,
		tokenStore:  deps.TokenRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		bcryptCost:  cfg.Auth.BcryptCost,
		defaultRole: role,
	}
}

// Register creates a new user account and issues its first bearer token.
// The token is persisted unconditionally; a brand-new user cannot hold a
// prior one.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewEmailTaken(email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         s.defaultRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	token, exp, err := s.issueAndStore(ctx, user, false)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		UserID:    user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Email: user.Email, Role: user.Role},
	})

	return user, token, exp, nil
}

// Login authenticates a user and rotates their bearer token: any prior
// token is revoked before the fresh one becomes visible.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthError(apperrors.AuthReasonEmailNotFound, "no account for this email")
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewAuthError(apperrors.AuthReasonInvalidPassword, "invalid password")
	}

	token, exp, err := s.issueAndStore(ctx, user, true)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout revokes the presented token by removing it from the store.
// Unknown or already-revoked tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return s.tokenStore.Delete(ctx, raw)
}

// TokenManager exposes the underlying codec for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueAndStore(ctx context.Context, user *domain.User, replace bool) (string, time.Time, error) {
	raw, exp, err := s.tokenMgr.Issue(user.Email, user.Role)
	if err != nil {
		return "", time.Time{}, err
	}

	record := &domain.Token{
		Token:  raw,
		UserID: user.ID,
		Kind:   domain.TokenKindBearer,
	}
	if replace {
		err = s.tokenStore.Replace(ctx, user.ID, record)
	} else {
		err = s.tokenStore.Create(ctx, record)
	}
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, exp, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
