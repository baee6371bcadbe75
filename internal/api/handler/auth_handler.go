package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/formotex/inventory-api/internal/api/middleware"
	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

var errMissingCredentials = domain.NewError(domain.KindBadRequest, "Email and password are required")

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges credentials for a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Email == nil || req.Password == nil {
		return errMissingCredentials
	}

	res, err := h.authService.Login(c.Request().Context(), *req.Email, *req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, User: res.User})
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, err := middleware.BearerToken(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), raw); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity resolved for the current token.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  domain.Identity
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}
