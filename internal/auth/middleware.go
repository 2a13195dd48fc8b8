package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/service-order-api/pkg/util"
)

const claimsKey = "auth_claims"

// Token verification is stateless; claims are trusted as issued, so no user
// lookup happens here. Every failure path returns the same generic message.
const invalidTokenMessage = "invalid token or session expired"

// Middleware gates protected routes behind bearer token verification.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the authorization gate.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. On success the decoded
// claims are attached to the request and the chain proceeds.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized(invalidTokenMessage)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized(invalidTokenMessage)
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized(invalidTokenMessage)
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated identity.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
