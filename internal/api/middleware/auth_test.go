package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, raw string) (*domain.Identity, error)
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Authenticate(ctx context.Context, raw string) (*domain.Identity, error) {
	return s.authenticateFn(ctx, raw)
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return errors.New("not implemented")
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, raw string) (*domain.Identity, error) {
			if raw != "good-token" {
				t.Fatalf("unexpected token %q", raw)
			}
			return &domain.Identity{ID: "u1", Email: "jane@example.com", Role: domain.RoleUser}, nil
		},
	}
	c, rec := newContext("Bearer good-token")

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.ID != "u1" || id.Role != domain.RoleUser {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsBadHeaders(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer   ", "bearer"} {
		c, _ := newContext(header)
		handler := Auth(stub)(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		err := handler(c)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("header %q: expected ErrUnauthenticated, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			return &domain.Identity{ID: "u1", Role: domain.RoleAdmin}, nil
		},
	}
	c, _ := newContext("bearer tok")

	if err := Auth(stub)(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthMiddleware_PropagatesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidToken, domain.ErrAccountGone} {
		stub := &stubAuthService{
			authenticateFn: func(context.Context, string) (*domain.Identity, error) {
				return nil, want
			},
		}
		c, _ := newContext("Bearer whatever")

		err := Auth(stub)(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})(c)
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
		if _, ok := IdentityFrom(c); ok {
			t.Fatalf("identity must not be set on failure")
		}
	}
}
