package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/formotex/inventory-api/internal/api/middleware"
	"github.com/formotex/inventory-api/internal/core/domain"
)

// actor returns the identity the Auth middleware resolved for this request.
// A missing identity means the route was registered without Auth.
func actor(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// bind decodes the request body. Malformed JSON and type mismatches are client
// errors with the decoder's message as detail.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		detail := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			if msg, ok := he.Message.(string); ok {
				detail = msg
			}
		}
		return domain.NewError(domain.KindBadRequest, "Invalid request body", detail)
	}
	return nil
}
