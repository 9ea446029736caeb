package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

type stubCatalogService[T domain.Entity] struct {
	findByIDFn func(ctx context.Context, id string) (T, bool, error)
	findFn     func(ctx context.Context, query map[string]string) ([]T, error)
	saveFn     func(ctx context.Context, entity T) (T, error)
	updateFn   func(ctx context.Context, entity T) (T, error)
	removeFn   func(ctx context.Context, id string) error
}

func (s *stubCatalogService[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubCatalogService[T]) Find(ctx context.Context, query map[string]string) ([]T, error) {
	return s.findFn(ctx, query)
}

func (s *stubCatalogService[T]) Save(ctx context.Context, entity T) (T, error) {
	return s.saveFn(ctx, entity)
}

func (s *stubCatalogService[T]) Update(ctx context.Context, entity T) (T, error) {
	return s.updateFn(ctx, entity)
}

func (s *stubCatalogService[T]) Remove(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}

type stubSession struct {
	issueFn func(ctx context.Context, cred domain.Credential) (*domain.LoginResult, error)
}

func (s *stubSession) Issue(ctx context.Context, cred domain.Credential) (*domain.LoginResult, error) {
	return s.issueFn(ctx, cred)
}

func (s *stubSession) Validate(ctx context.Context, _ string) (context.Context, error) {
	return ctx, domain.ErrTokenInvalid
}

func (s *stubSession) IsLoggedIn(context.Context) bool { return false }

func (s *stubSession) HasAnyRole(context.Context, ...string) bool { return false }

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonBody(s string) *strings.Reader { return strings.NewReader(s) }
