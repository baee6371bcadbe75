package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindBadRequest:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to the status code of their kind.
//   - Logs unexpected errors and answers them with a generic 500.
//   - Adds the error chain as "stack" unless running in production.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	production := env == "production"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if !production {
			resp.Stack = fmt.Sprintf("%+v", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var de *domain.Error
	if errors.As(err, &de) {
		if code, ok := kindStatus[de.Kind]; ok {
			return code, errorResponse{Message: de.Message, Details: de.Details}
		}
	}

	// Echo's own errors: unmatched routes, wrong methods, body limit.
	// A 500 HTTPError takes the logged generic path below.
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusInternalServerError {
		if he.Code == http.StatusNotFound {
			return he.Code, errorResponse{
				Message: fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path),
			}
		}
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "Internal server error"}
}
