package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// Middleware authenticates bearer tokens. It is a pass-through gate: any
// failure leaves the request unauthenticated and lets the role gates reject.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	store  repository.TokenRepository
}

// NewMiddleware constructs the request authenticator.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, store repository.TokenRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users, store: store}
}

// ExtractBearer pulls the raw token out of the Authorization header.
func ExtractBearer(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Handle establishes the caller's identity when the presented token is
// cryptographically valid AND still present in the token store. A token
// deleted at logout fails the store check even before natural expiry.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	raw, ok := ExtractBearer(c)
	if !ok {
		return c.Next()
	}

	claims, err := m.tokens.Validate(raw)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.GetByEmail(c.UserContext(), claims.Subject)
	if err != nil {
		return c.Next()
	}

	stored, err := m.store.GetByToken(c.UserContext(), raw)
	if err != nil || stored.UserID != user.ID {
		return c.Next()
	}

	c.Locals(principalKey, &Principal{User: user, Role: user.Role})
	return c.Next()
}

// ClearPrincipal drops the authenticated identity for the current request.
func ClearPrincipal(c *fiber.Ctx) {
	c.Locals(principalKey, nil)
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
