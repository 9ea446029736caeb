package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/api/metrics"
	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// CachedRepository is a read-through cache for lookups by id in front of
// another repository. Writes go straight through and evict the entry.
// Key format: catalog:<collection>:<id>
type CachedRepository[T domain.Entity] struct {
	next       ports.CatalogRepository[T]
	client     *redis.Client
	collection string
	ttl        time.Duration
	log        zerolog.Logger
}

// NewCachedRepository wraps next. If ttl <= 0, defaultCacheTTL is used.
func NewCachedRepository[T domain.Entity](
	next ports.CatalogRepository[T],
	client *redis.Client,
	collection string,
	ttl time.Duration,
	log zerolog.Logger,
) *CachedRepository[T] {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedRepository[T]{next: next, client: client, collection: collection, ttl: ttl, log: log}
}

func (r *CachedRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	if cached, ok := r.get(ctx, id); ok {
		metrics.CacheLookupsTotal.WithLabelValues(r.collection, "hit").Inc()
		return cached, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(r.collection, "miss").Inc()

	entity, err := r.next.FindByID(ctx, id)
	if err != nil {
		return entity, err
	}
	r.put(ctx, entity)
	return entity, nil
}

func (r *CachedRepository[T]) FindOne(ctx context.Context, field, value string) (T, error) {
	return r.next.FindOne(ctx, field, value)
}

func (r *CachedRepository[T]) Find(ctx context.Context, filter ports.Filter) ([]T, error) {
	return r.next.Find(ctx, filter)
}

func (r *CachedRepository[T]) Insert(ctx context.Context, entity T) (T, error) {
	return r.next.Insert(ctx, entity)
}

// Writes evict before and after the store call so a read racing the write
// cannot leave the old value cached for a full TTL.
func (r *CachedRepository[T]) Update(ctx context.Context, entity T) (T, error) {
	r.evict(ctx, entity.EntityID())
	updated, err := r.next.Update(ctx, entity)
	r.evict(ctx, entity.EntityID())
	return updated, err
}

func (r *CachedRepository[T]) Delete(ctx context.Context, id string) error {
	r.evict(ctx, id)
	err := r.next.Delete(ctx, id)
	r.evict(ctx, id)
	return err
}

// Cache failures are logged and otherwise ignored; the store stays the
// source of truth.
func (r *CachedRepository[T]) get(ctx context.Context, id string) (T, bool) {
	var out T
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str("key", r.key(id)).Msg("cache read failed")
		}
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		r.log.Warn().Err(err).Str("key", r.key(id)).Msg("cache entry unreadable")
		return out, false
	}
	return out, true
}

func (r *CachedRepository[T]) put(ctx context.Context, entity T) {
	raw, err := json.Marshal(entity)
	if err != nil {
		r.log.Warn().Err(err).Msg("cache encode failed")
		return
	}
	if err := r.client.Set(ctx, r.key(entity.EntityID()), raw, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", r.key(entity.EntityID())).Msg("cache write failed")
	}
}

func (r *CachedRepository[T]) evict(ctx context.Context, id string) {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", r.key(id)).Msg("cache evict failed")
	}
}

// key folds the hex id to lowercase; the store matches ids in any case.
func (r *CachedRepository[T]) key(id string) string {
	return fmt.Sprintf("catalog:%s:%s", r.collection, strings.ToLower(id))
}
