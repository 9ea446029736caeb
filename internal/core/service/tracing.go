package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
	"github.com/catalogshop/catalog-api/pkg/logger"
)

type tracedCatalog[T domain.Entity] struct {
	next ports.CatalogService[T]
	name string
	log  zerolog.Logger
}

// NewTracedCatalogService wraps next so every call is logged on entry and
// exit at debug level.
func NewTracedCatalogService[T domain.Entity](next ports.CatalogService[T], name string, log zerolog.Logger) ports.CatalogService[T] {
	return &tracedCatalog[T]{next: next, name: name, log: log}
}

func (t *tracedCatalog[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	done := logger.Trace(t.log, t.name+".FindByID", ctx, id)
	entity, found, err := t.next.FindByID(ctx, id)
	done(err, entity, found)
	return entity, found, err
}

func (t *tracedCatalog[T]) Find(ctx context.Context, query map[string]string) ([]T, error) {
	done := logger.Trace(t.log, t.name+".Find", ctx, query)
	entities, err := t.next.Find(ctx, query)
	done(err, len(entities))
	return entities, err
}

func (t *tracedCatalog[T]) Save(ctx context.Context, entity T) (T, error) {
	done := logger.Trace(t.log, t.name+".Save", ctx, entity)
	saved, err := t.next.Save(ctx, entity)
	done(err, saved)
	return saved, err
}

func (t *tracedCatalog[T]) Update(ctx context.Context, entity T) (T, error) {
	done := logger.Trace(t.log, t.name+".Update", ctx, entity)
	updated, err := t.next.Update(ctx, entity)
	done(err, updated)
	return updated, err
}

func (t *tracedCatalog[T]) Remove(ctx context.Context, id string) error {
	done := logger.Trace(t.log, t.name+".Remove", ctx, id)
	err := t.next.Remove(ctx, id)
	done(err)
	return err
}

type tracedSession struct {
	next ports.AuthSession
	log  zerolog.Logger
}

// NewTracedSession wraps an AuthSession the same way. Credentials render
// without their password and tokens are never logged.
func NewTracedSession(next ports.AuthSession, log zerolog.Logger) ports.AuthSession {
	return &tracedSession{next: next, log: log}
}

func (t *tracedSession) Issue(ctx context.Context, cred domain.Credential) (*domain.LoginResult, error) {
	done := logger.Trace(t.log, "iam.Issue", ctx, cred)
	res, err := t.next.Issue(ctx, cred)
	if res != nil {
		done(err, res.Roles, res.ExpiresIn)
	} else {
		done(err)
	}
	return res, err
}

func (t *tracedSession) Validate(ctx context.Context, authorization string) (context.Context, error) {
	done := logger.Trace(t.log, "iam.Validate", ctx)
	out, err := t.next.Validate(ctx, authorization)
	subject, _ := SubjectFromContext(out)
	done(err, subject)
	return out, err
}

func (t *tracedSession) IsLoggedIn(ctx context.Context) bool {
	done := logger.Trace(t.log, "iam.IsLoggedIn", ctx)
	ok := t.next.IsLoggedIn(ctx)
	done(nil, ok)
	return ok
}

func (t *tracedSession) HasAnyRole(ctx context.Context, roles ...string) bool {
	done := logger.Trace(t.log, "iam.HasAnyRole", ctx, roles)
	ok := t.next.HasAnyRole(ctx, roles...)
	done(nil, ok)
	return ok
}
