package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid id", fmt.Errorf("find book: %w", domain.ErrInvalidID), http.StatusBadRequest},
		{"unique key", fmt.Errorf("%w: title %q", domain.ErrUniqueKeyExists, "Alpha"), http.StatusBadRequest},
		{"id not exists", domain.ErrIDNotExists, http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"authorization", domain.ErrAuthorizationInvalid, http.StatusUnauthorized},
		{"token invalid", fmt.Errorf("%w: bad signature", domain.ErrTokenInvalid), http.StatusUnauthorized},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"echo error", echo.NewHTTPError(http.StatusNotAcceptable, "body must be application/json"), http.StatusNotAcceptable},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("expected an error message")
			}
			if rec.Header().Get(echo.HeaderWWWAuthenticate) != "" {
				t.Fatalf("unexpected challenge header")
			}
		})
	}
}

func TestHTTPErrorHandler_ExpiredTokenChallenge(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(&domain.ExpiredTokenError{Scheme: "Bearer", Realm: "catalog.example"}, c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	challenge := rec.Header().Get(echo.HeaderWWWAuthenticate)
	if !strings.HasPrefix(challenge, `Bearer realm="catalog.example"`) || !strings.Contains(challenge, `error="invalid_token"`) {
		t.Fatalf("unexpected challenge: %q", challenge)
	}
}

func TestHTTPErrorHandler_HidesInternalDetail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("mongo: server selection timeout"), c)

	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotFound, c)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
