package middleware

import (
	"context"
	"strings"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/service"
)

// stubSession accepts "Bearer <user id>" for the ids in roles.
type stubSession struct {
	roles      map[string][]string
	expired    bool
	validateFn func(authorization string)
}

func (s *stubSession) Issue(context.Context, domain.Credential) (*domain.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubSession) Validate(ctx context.Context, authorization string) (context.Context, error) {
	if s.validateFn != nil {
		s.validateFn(authorization)
	}
	if authorization == "" {
		return ctx, domain.ErrAuthorizationInvalid
	}
	if s.expired {
		return ctx, &domain.ExpiredTokenError{Scheme: "Bearer", Realm: "test"}
	}
	id, ok := strings.CutPrefix(authorization, "Bearer ")
	if _, known := s.roles[id]; !ok || !known {
		return ctx, domain.ErrTokenInvalid
	}
	return service.WithSubject(ctx, id), nil
}

func (s *stubSession) IsLoggedIn(ctx context.Context) bool {
	_, ok := service.SubjectFromContext(ctx)
	return ok
}

func (s *stubSession) HasAnyRole(ctx context.Context, roles ...string) bool {
	id, ok := service.SubjectFromContext(ctx)
	if !ok {
		return false
	}
	for _, have := range s.roles[id] {
		for _, want := range roles {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}
