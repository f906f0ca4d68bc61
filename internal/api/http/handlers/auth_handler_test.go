package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/restaurant-service/internal/api/http"
	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/observability"
	"github.com/spec-kit/restaurant-service/internal/service"
)

type memUsers struct {
	seq   int
	users map[string]*domain.User
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.seq++
	user.ID = "u" + strconv.Itoa(m.seq)
	cp := *user
	m.users[user.ID] = &cp
	return nil
}
func (m *memUsers) Update(_ context.Context, user *domain.User) error { return nil }
func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (m *memUsers) List(_ context.Context, _, _ int) ([]domain.User, error) { return nil, nil }
func (m *memUsers) Delete(_ context.Context, _ string) error                { return nil }

type memTokens struct {
	tokens map[string]*domain.Token
}

func (m *memTokens) Create(_ context.Context, token *domain.Token) error {
	cp := *token
	m.tokens[token.Token] = &cp
	return nil
}
func (m *memTokens) GetByToken(_ context.Context, raw string) (*domain.Token, error) {
	if token, ok := m.tokens[raw]; ok {
		return token, nil
	}
	return nil, pgx.ErrNoRows
}
func (m *memTokens) GetByUser(_ context.Context, userID string) (*domain.Token, error) {
	for _, token := range m.tokens {
		if token.UserID == userID {
			return token, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (m *memTokens) Replace(_ context.Context, userID string, token *domain.Token) error {
	for raw, existing := range m.tokens {
		if existing.UserID == userID {
			delete(m.tokens, raw)
		}
	}
	cp := *token
	m.tokens[token.Token] = &cp
	return nil
}
func (m *memTokens) Delete(_ context.Context, raw string) error {
	delete(m.tokens, raw)
	return nil
}

func newAuthApp(t *testing.T) (*fiber.App, *memTokens) {
	t.Helper()

	users := &memUsers{users: map[string]*domain.User{}}
	tokens := &memTokens{tokens: map[string]*domain.Token{}}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenTTLHours:    1,
			BcryptCost:       4,
			RegistrationRole: "USER",
		},
	}
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:  users,
		TokenRepo: tokens,
		Logger:    zap.NewNop(),
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	app.Use(auth.NewMiddleware(authService.TokenManager(), users, tokens).Handle)

	authHandler := handlers.NewAuthHandler(authService)
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)
	app.Post("/api/auth/logout", authHandler.Logout)
	app.Get("/api/me", auth.RequireRole(domain.RoleUser), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"email": principal.User.Email})
	})
	return app, tokens
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, bearer string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func issuedToken(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Data struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Data.Auth.Token)
	return body.Data.Auth.Token
}

func TestAuthFlow_RegisterLoginLogout(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"firstName": "Ann", "lastName": "Lee", "email": "a@x.com", "password": "pw123456",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := issuedToken(t, resp)

	// The freshly issued token authenticates.
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+first)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	// Login rotates: the old token stops working, the new one works.
	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "a@x.com", "password": "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := issuedToken(t, resp)
	require.NotEqual(t, first, second)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+first)
	meResp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode, "superseded token is revoked")

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+second)
	meResp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	// Logout revokes immediately.
	resp = postJSON(t, app, "/api/auth/logout", nil, second)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+second)
	meResp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	app, _ := newAuthApp(t)

	body := map[string]string{"firstName": "Ann", "email": "a@x.com", "password": "pw123456"}
	resp := postJSON(t, app, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errBody struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "EMAIL_TAKEN", errBody.Error.Code)
}

func TestLogin_BadCredentialsUnauthorized(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"firstName": "Ann", "email": "a@x.com", "password": "pw123456",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "a@x.com", "password": "wrongpw",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "pw123456",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_IdempotentWithoutToken(t *testing.T) {
	app, tokens := newAuthApp(t)

	// No Authorization header at all.
	resp := postJSON(t, app, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Malformed header scheme.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp2, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	// Unknown token: still 200, store untouched.
	resp = postJSON(t, app, "/api/auth/logout", nil, "never.issued.token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, tokens.tokens)
}
