package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/service"
)

func rbacContext(e *echo.Echo, subject string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	if subject != "" {
		req = req.WithContext(service.WithSubject(req.Context(), subject))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAnyRole_Allows(t *testing.T) {
	e := echo.New()
	session := &stubSession{roles: map[string][]string{"u1": {"employee"}}}
	c, rec := rbacContext(e, "u1")

	called := false
	handler := RequireAnyRole(session, domain.RoleAdmin, "EMPLOYEE")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAnyRole_Forbids(t *testing.T) {
	e := echo.New()
	session := &stubSession{roles: map[string][]string{"u1": {"customer"}}}
	c, _ := rbacContext(e, "u1")

	err := RequireAnyRole(session, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAnyRole_NotLoggedIn(t *testing.T) {
	e := echo.New()
	session := &stubSession{roles: map[string][]string{"u1": {"admin"}}}
	c, _ := rbacContext(e, "")

	err := RequireAnyRole(session, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrAuthorizationInvalid) {
		t.Fatalf("expected ErrAuthorizationInvalid, got %v", err)
	}
}

func TestRequireAnyRole_UserWithoutRoles(t *testing.T) {
	e := echo.New()
	session := &stubSession{roles: map[string][]string{"u5": nil}}
	c, _ := rbacContext(e, "u5")

	err := RequireAnyRole(session, domain.RoleAdmin, domain.RoleEmployee, domain.RoleCustomer)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
