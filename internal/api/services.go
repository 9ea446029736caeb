package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
	"github.com/catalogshop/catalog-api/internal/core/service"
	mongorepo "github.com/catalogshop/catalog-api/internal/infrastructure/db/mongo"
	rediscache "github.com/catalogshop/catalog-api/internal/infrastructure/db/redis"
)

// Services are the catalog services behind the routes.
type Services struct {
	Books       ports.CatalogService[*domain.Book]
	Films       ports.CatalogService[*domain.Film]
	FanArticles ports.CatalogService[*domain.FanArticle]
	Customers   ports.CatalogService[*domain.Customer]
	Publishers  ports.CatalogService[*domain.Publisher]
}

// Backends are the stores and outbound channels shared by every catalog.
type Backends struct {
	DB *mongo.Database
	// Redis is optional; reads go straight to MongoDB without it.
	Redis    *redis.Client
	CacheTTL time.Duration
	Notifier ports.Notifier
	NotifyTo string
	Log      zerolog.Logger
}

// NewServices builds one traced CatalogService per domain and makes sure
// each collection has its unique index.
func NewServices(ctx context.Context, b Backends) (Services, error) {
	var (
		s   Services
		err error
	)
	if s.Books, err = buildCatalog(ctx, b, mongorepo.CollectionBooks, service.BookSpec(b.NotifyTo)); err != nil {
		return Services{}, err
	}
	if s.Films, err = buildCatalog(ctx, b, mongorepo.CollectionFilms, service.FilmSpec()); err != nil {
		return Services{}, err
	}
	if s.FanArticles, err = buildCatalog(ctx, b, mongorepo.CollectionFanArticles, service.FanArticleSpec(b.NotifyTo)); err != nil {
		return Services{}, err
	}
	if s.Customers, err = buildCatalog(ctx, b, mongorepo.CollectionCustomers, service.CustomerSpec()); err != nil {
		return Services{}, err
	}
	if s.Publishers, err = buildCatalog(ctx, b, mongorepo.CollectionPublishers, service.PublisherSpec()); err != nil {
		return Services{}, err
	}
	return s, nil
}

func buildCatalog[T domain.Entity](ctx context.Context, b Backends, collection string, spec service.CatalogSpec[T]) (ports.CatalogService[T], error) {
	store := mongorepo.NewCatalogRepository[T](b.DB, collection, spec.UniqueField)
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s indexes: %w", collection, err)
	}

	var repo ports.CatalogRepository[T] = store
	if b.Redis != nil {
		repo = rediscache.NewCachedRepository[T](store, b.Redis, collection, b.CacheTTL, b.Log)
	}

	svc := service.NewCatalogService(spec, repo, b.Notifier, b.Log)
	return service.NewTracedCatalogService[T](svc, spec.Name, b.Log), nil
}
