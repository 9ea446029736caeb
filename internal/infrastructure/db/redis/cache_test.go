package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

// countingRepo matches ids case-insensitively, like the document store.
type countingRepo struct {
	films    map[string]*domain.Film
	lookups  int
	onUpdate func()
}

func (r *countingRepo) FindByID(_ context.Context, id string) (*domain.Film, error) {
	r.lookups++
	f, ok := r.films[strings.ToLower(id)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *f
	return &c, nil
}

func (r *countingRepo) FindOne(context.Context, string, string) (*domain.Film, error) {
	return nil, domain.ErrNotFound
}

func (r *countingRepo) Find(context.Context, ports.Filter) ([]*domain.Film, error) {
	return nil, nil
}

func (r *countingRepo) Insert(_ context.Context, f *domain.Film) (*domain.Film, error) {
	return f, nil
}

func (r *countingRepo) Update(_ context.Context, f *domain.Film) (*domain.Film, error) {
	if r.onUpdate != nil {
		r.onUpdate()
	}
	id := strings.ToLower(f.ID)
	if _, ok := r.films[id]; !ok {
		return nil, domain.ErrNotFound
	}
	c := *f
	c.ID = id
	c.Version++
	r.films[id] = &c
	return &c, nil
}

func (r *countingRepo) Delete(_ context.Context, id string) error {
	delete(r.films, strings.ToLower(id))
	return nil
}

const filmID = "000000000000000000000001"

func newCache(t *testing.T) (*CachedRepository[*domain.Film], *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{films: map[string]*domain.Film{
		filmID: {Document: domain.Document{ID: filmID}, Title: "Metropolis", Medium: domain.MediumDVD},
	}}
	return NewCachedRepository[*domain.Film](repo, client, "films", time.Minute, zerolog.Nop()), repo, mr
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	cache, repo, mr := newCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f, err := cache.FindByID(ctx, filmID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if f.Title != "Metropolis" || f.ID != filmID {
			t.Fatalf("unexpected film: %+v", f)
		}
	}
	if repo.lookups != 1 {
		t.Fatalf("expected a single store lookup, got %d", repo.lookups)
	}
	if !mr.Exists("catalog:films:" + filmID) {
		t.Fatalf("expected cache key to be set")
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cache.FindByID(ctx, filmID); err != nil {
		t.Fatalf("FindByID after expiry: %v", err)
	}
	if repo.lookups != 2 {
		t.Fatalf("expected store lookup after ttl, got %d", repo.lookups)
	}
}

func TestCachedRepository_MissIsNotCached(t *testing.T) {
	cache, _, mr := newCache(t)

	_, err := cache.FindByID(context.Background(), "000000000000000000000999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if mr.Exists("catalog:films:000000000000000000000999") {
		t.Fatalf("absent entities must not be cached")
	}
}

func TestCachedRepository_WritesEvict(t *testing.T) {
	cache, repo, mr := newCache(t)
	ctx := context.Background()

	if _, err := cache.FindByID(ctx, filmID); err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	if _, err := cache.Update(ctx, &domain.Film{Document: domain.Document{ID: filmID}, Title: "Metropolis (restored)"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if mr.Exists("catalog:films:" + filmID) {
		t.Fatalf("update must evict the entry")
	}

	f, _ := cache.FindByID(ctx, filmID)
	if f.Title != "Metropolis (restored)" || f.Version != 1 {
		t.Fatalf("stale read after update: %+v", f)
	}

	if err := cache.Delete(ctx, filmID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("catalog:films:" + filmID) {
		t.Fatalf("delete must evict the entry")
	}
	if _, err := cache.FindByID(ctx, filmID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if len(repo.films) != 0 {
		t.Fatalf("delete not forwarded")
	}
}

func TestCachedRepository_EvictsAcrossIDCase(t *testing.T) {
	cache, repo, mr := newCache(t)
	ctx := context.Background()
	const lower = "00000000000000000000abcd"
	repo.films[lower] = &domain.Film{Document: domain.Document{ID: lower}, Title: "Alpha", Medium: domain.MediumDVD}

	if _, err := cache.FindByID(ctx, lower); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !mr.Exists("catalog:films:" + lower) {
		t.Fatalf("expected entry to be cached")
	}

	if _, err := cache.Update(ctx, &domain.Film{Document: domain.Document{ID: strings.ToUpper(lower)}, Title: "Beta"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if f, err := cache.FindByID(ctx, lower); err != nil || f.Title != "Beta" {
		t.Fatalf("stale read after update through uppercase id: %+v, %v", f, err)
	}

	if err := cache.Delete(ctx, strings.ToUpper(lower)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := cache.FindByID(ctx, lower); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted entity still served: %v", err)
	}
}

func TestCachedRepository_EvictsBeforeWrite(t *testing.T) {
	cache, repo, mr := newCache(t)
	ctx := context.Background()

	if _, err := cache.FindByID(ctx, filmID); err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	cachedDuringWrite := true
	repo.onUpdate = func() { cachedDuringWrite = mr.Exists("catalog:films:" + filmID) }

	if _, err := cache.Update(ctx, &domain.Film{Document: domain.Document{ID: filmID}, Title: "Metropolis (restored)"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cachedDuringWrite {
		t.Fatalf("entry must be evicted before the store write")
	}
}

func TestCachedRepository_RedisDown(t *testing.T) {
	cache, repo, mr := newCache(t)
	mr.Close()

	f, err := cache.FindByID(context.Background(), filmID)
	if err != nil || f.Title != "Metropolis" {
		t.Fatalf("cache outage must fall back to the store: %+v, %v", f, err)
	}
	if repo.lookups != 1 {
		t.Fatalf("expected store lookup, got %d", repo.lookups)
	}
}
