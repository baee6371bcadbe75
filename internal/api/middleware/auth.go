package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

const identityKey = "identity"

// Auth resolves the bearer token to the live identity of its subject and
// stores it on the context. Handlers behind it can rely on IdentityFrom.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := BearerToken(c)
			if err != nil {
				return err
			}

			identity, err := auth.Authenticate(c.Request().Context(), raw)
			if err != nil {
				return err
			}

			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", domain.ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrUnauthenticated
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}

// IdentityFrom returns the identity set by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// WithIdentity stores id on the context the same way Auth does.
func WithIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}
