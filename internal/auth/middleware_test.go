package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeTokenRepo struct {
	byRaw map[string]*domain.Token
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *domain.Token) error {
	f.byRaw[token.Token] = token
	return nil
}
func (f *fakeTokenRepo) GetByToken(ctx context.Context, raw string) (*domain.Token, error) {
	if tok, ok := f.byRaw[raw]; ok {
		return tok, nil
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeTokenRepo) GetByUser(ctx context.Context, userID string) (*domain.Token, error) {
	for _, tok := range f.byRaw {
		if tok.UserID == userID {
			return tok, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeTokenRepo) Replace(ctx context.Context, userID string, token *domain.Token) error {
	for raw, tok := range f.byRaw {
		if tok.UserID == userID {
			delete(f.byRaw, raw)
		}
	}
	f.byRaw[token.Token] = token
	return nil
}
func (f *fakeTokenRepo) Delete(ctx context.Context, raw string) error {
	delete(f.byRaw, raw)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager, *fakeTokenRepo, *domain.User) {
	t.Helper()

	user := &domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser}
	users := &fakeUserRepo{byEmail: map[string]*domain.User{user.Email: user}}
	store := &fakeTokenRepo{byRaw: map[string]*domain.Token{}}
	tm := auth.NewTokenManager("super_secret", time.Hour)

	app := fiber.New()
	app.Use(auth.NewMiddleware(tm, users, store).Handle)
	app.Get("/protected", auth.RequireRole(domain.RoleUser), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"email": principal.User.Email})
	})
	app.Get("/admin", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app, tm, store, user
}

func TestMiddleware_NoHeaderPassesThroughUnauthenticated(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ValidLiveToken(t *testing.T) {
	app, tm, store, user := newTestApp(t)

	raw, _, err := tm.Issue(user.Email, user.Role)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &domain.Token{Token: raw, UserID: user.ID, Kind: domain.TokenKindBearer}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddleware_RevokedTokenRejected(t *testing.T) {
	// Cryptographically valid but absent from the store: revocation wins.
	app, tm, _, user := newTestApp(t)

	raw, _, err := tm.Issue(user.Email, user.Role)
	require.NoError(t, err)

	_, err = tm.Validate(raw)
	require.NoError(t, err, "codec alone still accepts the token")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_GarbageTokenRejected(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_RoleGate(t *testing.T) {
	app, tm, store, user := newTestApp(t)

	raw, _, err := tm.Issue(user.Email, user.Role)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &domain.Token{Token: raw, UserID: user.ID, Kind: domain.TokenKindBearer}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
