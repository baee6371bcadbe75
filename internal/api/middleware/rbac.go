package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/pkg/metrics"
)

// RequireRole lets the request through only when the authenticated identity
// holds one of roles. It must run after Auth.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.AuthorizationDenialsTotal.WithLabelValues("role").Inc()
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}
