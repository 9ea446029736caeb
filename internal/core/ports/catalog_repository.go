package ports

import (
	"context"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

// ClauseKind selects how a Clause matches a field.
type ClauseKind int

const (
	// ClauseEquals matches Field == Value.
	ClauseEquals ClauseKind = iota
	// ClauseContainsFold matches documents whose Field contains Value, ignoring case.
	ClauseContainsFold
	// ClauseHas matches documents whose array Field contains Value.
	ClauseHas
	// ClauseHasAll matches documents whose array Field contains every entry of Values.
	ClauseHasAll
)

// Clause is a single store-neutral filter condition.
type Clause struct {
	Kind   ClauseKind
	Field  string
	Value  string
	Values []string
}

// Filter is a conjunction of clauses, applied in order, plus a sort field.
// An empty Clauses slice matches everything.
type Filter struct {
	Clauses []Clause
	Sort    string
}

// CatalogRepository defines persistence operations for one catalog collection.
// Lookups that find nothing return domain.ErrNotFound.
type CatalogRepository[T domain.Entity] interface {
	FindByID(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, field, value string) (T, error)
	Find(ctx context.Context, filter Filter) ([]T, error)
	// Insert assigns a new id and returns the stored entity.
	Insert(ctx context.Context, entity T) (T, error)
	// Update replaces the fields of the entity with the same id and bumps its
	// version. Returns domain.ErrNotFound when the id is unknown.
	Update(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, id string) error
}
