package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

// CatalogSpec describes one catalog domain.
type CatalogSpec[T domain.Entity] struct {
	// Name is used in log lines and error messages, e.g. "book".
	Name string
	// UniqueField is the stored field holding UniqueKey().
	UniqueField string
	// SortField orders every listing ascending.
	SortField string
	// TextField is matched as a case-insensitive substring when present in a query.
	TextField string
	// TagField is the array field the Tags query flags test against.
	TagField string
	// Tags maps a boolean query parameter to the tag value it requires.
	Tags map[string]string
	// Notify builds the mail sent after a successful save. Nil disables mail.
	Notify func(T) *domain.Mail
}

// CatalogService implements ports.CatalogService for any catalog entity.
type CatalogService[T domain.Entity] struct {
	spec     CatalogSpec[T]
	repo     ports.CatalogRepository[T]
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewCatalogService[T domain.Entity](
	spec CatalogSpec[T],
	repo ports.CatalogRepository[T],
	notifier ports.Notifier,
	log zerolog.Logger,
) *CatalogService[T] {
	return &CatalogService[T]{
		spec:     spec,
		repo:     repo,
		notifier: notifier,
		log:      log.With().Str("catalog", spec.Name).Logger(),
	}
}

func (s *CatalogService[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	id, err := domain.CanonicalID(id)
	if err != nil {
		return zero, false, err
	}

	entity, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("find %s %s: %w", s.spec.Name, id, err)
	}
	return entity, true, nil
}

// Find lists entities matching query. An empty query lists everything.
func (s *CatalogService[T]) Find(ctx context.Context, query map[string]string) ([]T, error) {
	entities, err := s.repo.Find(ctx, s.BuildFilter(query))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.spec.Name, err)
	}
	return entities, nil
}

// BuildFilter turns query parameters into a filter: passthrough equality
// clauses, then the text clause, then the tag clause.
func (s *CatalogService[T]) BuildFilter(query map[string]string) ports.Filter {
	filter := ports.Filter{Sort: s.spec.SortField}
	if len(query) == 0 {
		return filter
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var text *ports.Clause
	var tags []string
	for _, k := range keys {
		v := query[k]
		if s.spec.TextField != "" && k == s.spec.TextField {
			if v != "" {
				text = &ports.Clause{Kind: ports.ClauseContainsFold, Field: s.spec.TextField, Value: v}
			}
			continue
		}
		if tag, ok := s.spec.Tags[k]; ok {
			if v == "true" {
				tags = append(tags, tag)
			}
			continue
		}
		if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			s.log.Debug().Str("param", k).Msg("ignoring query parameter")
			continue
		}
		filter.Clauses = append(filter.Clauses, ports.Clause{Kind: ports.ClauseEquals, Field: k, Value: v})
	}

	if text != nil {
		filter.Clauses = append(filter.Clauses, *text)
	}
	switch len(tags) {
	case 0:
	case 1:
		filter.Clauses = append(filter.Clauses, ports.Clause{Kind: ports.ClauseHas, Field: s.spec.TagField, Value: tags[0]})
	default:
		filter.Clauses = append(filter.Clauses, ports.Clause{Kind: ports.ClauseHasAll, Field: s.spec.TagField, Values: tags})
	}
	return filter
}

// Save inserts entity unless its unique key is taken, then queues the
// notification mail.
func (s *CatalogService[T]) Save(ctx context.Context, entity T) (T, error) {
	var zero T
	key := entity.UniqueKey()

	_, err := s.repo.FindOne(ctx, s.spec.UniqueField, key)
	switch {
	case err == nil:
		return zero, fmt.Errorf("%w: %s %q", domain.ErrUniqueKeyExists, s.spec.UniqueField, key)
	case !errors.Is(err, domain.ErrNotFound):
		return zero, fmt.Errorf("save %s: %w", s.spec.Name, err)
	}

	entity.SetEntityID("")
	saved, err := s.repo.Insert(ctx, entity)
	if err != nil {
		return zero, fmt.Errorf("save %s: %w", s.spec.Name, err)
	}

	s.notify(saved)
	return saved, nil
}

// Update replaces the entity with the same id. The unique key may only be
// held by the entity itself.
func (s *CatalogService[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	id, err := domain.CanonicalID(entity.EntityID())
	if err != nil {
		return zero, err
	}
	entity.SetEntityID(id)

	key := entity.UniqueKey()
	existing, err := s.repo.FindOne(ctx, s.spec.UniqueField, key)
	switch {
	case err == nil && existing.EntityID() != id:
		return zero, fmt.Errorf("%w: %s %q", domain.ErrUniqueKeyExists, s.spec.UniqueField, key)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return zero, fmt.Errorf("update %s: %w", s.spec.Name, err)
	}

	updated, err := s.repo.Update(ctx, entity)
	if errors.Is(err, domain.ErrNotFound) {
		return zero, fmt.Errorf("%w: %s", domain.ErrIDNotExists, id)
	}
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", s.spec.Name, err)
	}
	return updated, nil
}

// Remove deletes by id. Unknown ids are not an error.
func (s *CatalogService[T]) Remove(ctx context.Context, id string) error {
	id, err := domain.CanonicalID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("remove %s %s: %w", s.spec.Name, id, err)
	}
	return nil
}

func (s *CatalogService[T]) notify(saved T) {
	if s.spec.Notify == nil || s.notifier == nil {
		return
	}
	mail := s.spec.Notify(saved)
	if mail == nil {
		return
	}
	if !s.notifier.Notify(*mail) {
		s.log.Warn().Str("id", saved.EntityID()).Msg("notification dropped, mail queue full")
	}
}
