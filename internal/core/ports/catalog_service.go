package ports

import (
	"context"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

// CatalogService is the CRUD surface shared by every catalog domain.
type CatalogService[T domain.Entity] interface {
	// FindByID reports found=false for an unknown id instead of an error.
	FindByID(ctx context.Context, id string) (entity T, found bool, err error)
	Find(ctx context.Context, query map[string]string) ([]T, error)
	Save(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Remove(ctx context.Context, id string) error
}

// Notifier delivers mail on a best-effort basis. Notify must not block.
type Notifier interface {
	Notify(mail domain.Mail) bool
}
