package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller as resolved from the bearer
// token. It deliberately carries no role: every operation re-resolves the
// caller's role from the profiles table.
type Principal struct {
	ID    string
	Email string
}

// TokenDenylist checks whether a token has been revoked (logout).
type TokenDenylist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens   *TokenManager
	denylist TokenDenylist
	logger   *zap.Logger
}

// NewMiddleware constructs the auth middleware. A nil denylist disables
// revocation checks.
func NewMiddleware(tokens *TokenManager, denylist TokenDenylist, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, denylist: denylist, logger: logger}
}

// Handle enforces authentication for protected routes. All rejection paths
// produce the same Unauthorized response; the reason is only logged.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		m.logger.Debug("missing or malformed authorization header", zap.String("path", c.Path()))
		return apperrors.NewUnauthorized("Unauthorized")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized("Unauthorized")
	}

	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(c.UserContext(), token)
		if err != nil {
			m.logger.Warn("denylist lookup failed", zap.Error(err))
			return apperrors.MapError(err)
		}
		if revoked {
			m.logger.Debug("revoked token presented", zap.String("subject", claims.Subject))
			return apperrors.NewUnauthorized("Unauthorized")
		}
	}

	c.Locals(principalKey, &Principal{ID: claims.Subject, Email: claims.Email})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
