package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

const (
	fieldID      = "_id"
	fieldVersion = "__v"
)

// Collection names.
const (
	CollectionBooks       = "books"
	CollectionFilms       = "films"
	CollectionFanArticles = "fan_articles"
	CollectionCustomers   = "customers"
	CollectionPublishers  = "publishers"
)

// CatalogRepository stores one entity type in one collection. Ids are
// ObjectIDs in the store and hex strings in the domain.
type CatalogRepository[T domain.Entity] struct {
	col         *mongo.Collection
	uniqueField string
}

func NewCatalogRepository[T domain.Entity](db *mongo.Database, collection, uniqueField string) *CatalogRepository[T] {
	return &CatalogRepository[T]{col: db.Collection(collection), uniqueField: uniqueField}
}

func (r *CatalogRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	oid, err := objectID(id)
	if err != nil {
		return zero, err
	}
	return r.findOne(ctx, bson.D{{Key: fieldID, Value: oid}})
}

func (r *CatalogRepository[T]) FindOne(ctx context.Context, field, value string) (T, error) {
	return r.findOne(ctx, bson.D{{Key: field, Value: value}})
}

func (r *CatalogRepository[T]) findOne(ctx context.Context, filter bson.D) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	err := r.col.FindOne(ctx, filter).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, domain.ErrNotFound
		}
		return out, fmt.Errorf("find one: %w", err)
	}
	return out, nil
}

// Find returns every document matching filter, sorted ascending by filter.Sort.
func (r *CatalogRepository[T]) Find(ctx context.Context, filter ports.Filter) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if filter.Sort != "" {
		opts.SetSort(bson.D{{Key: filter.Sort, Value: 1}})
	}

	cursor, err := r.col.Find(ctx, ToBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// Insert stores entity under a fresh ObjectID with version 0.
func (r *CatalogRepository[T]) Insert(ctx context.Context, entity T) (T, error) {
	var zero T
	doc, err := toDocument(entity)
	if err != nil {
		return zero, err
	}
	oid := primitive.NewObjectID()
	doc[fieldID] = oid
	doc[fieldVersion] = 0

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%w: %s %q", domain.ErrUniqueKeyExists, r.uniqueField, entity.UniqueKey())
		}
		return zero, fmt.Errorf("insert: %w", err)
	}
	entity.SetEntityID(oid.Hex())
	return entity, nil
}

// Update replaces the stored document with entity and increments its
// version in the same write. Optional fields absent from entity are removed.
func (r *CatalogRepository[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	oid, err := objectID(entity.EntityID())
	if err != nil {
		return zero, err
	}
	doc, err := toDocument(entity)
	if err != nil {
		return zero, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := replacement(doc)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	err = r.col.FindOneAndUpdate(ctx, bson.D{{Key: fieldID, Value: oid}}, update, opts).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return zero, domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return zero, fmt.Errorf("%w: %s %q", domain.ErrUniqueKeyExists, r.uniqueField, entity.UniqueKey())
	case err != nil:
		return zero, fmt.Errorf("update: %w", err)
	}
	return out, nil
}

// Delete removes the document if present.
func (r *CatalogRepository[T]) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.D{{Key: fieldID, Value: oid}}); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique index backing the key check.
func (r *CatalogRepository[T]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: r.uniqueField, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}

// toDocument flattens an entity into a mutable document without its id.
func toDocument(entity any) (bson.M, error) {
	raw, err := bson.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	delete(doc, fieldID)
	return doc, nil
}

// replacement builds an update pipeline that swaps the document body for
// doc while keeping _id and bumping __v. $literal keeps user values that
// start with "$" from being read as field paths.
func replacement(doc bson.M) mongo.Pipeline {
	body := make(bson.M, len(doc))
	for k, v := range doc {
		if k == fieldID || k == fieldVersion {
			continue
		}
		body[k] = v
	}
	return mongo.Pipeline{
		{{Key: "$replaceWith", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
			bson.D{{Key: "$literal", Value: body}},
			bson.D{
				{Key: fieldID, Value: "$" + fieldID},
				{Key: fieldVersion, Value: bson.D{{Key: "$add", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$" + fieldVersion, 0}}},
					1,
				}}}},
			},
		}}}}},
	}
}

// ToBSON translates a store-neutral filter into a MongoDB query.
func ToBSON(f ports.Filter) bson.D {
	if len(f.Clauses) == 0 {
		return bson.D{}
	}

	and := make(bson.A, 0, len(f.Clauses))
	for _, c := range f.Clauses {
		switch c.Kind {
		case ports.ClauseEquals:
			and = append(and, bson.D{{Key: c.Field, Value: equalsValue(c.Value)}})
		case ports.ClauseContainsFold:
			and = append(and, bson.D{{Key: c.Field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(c.Value), Options: "i"}}})
		case ports.ClauseHas:
			and = append(and, bson.D{{Key: c.Field, Value: c.Value}})
		case ports.ClauseHasAll:
			values := make(bson.A, 0, len(c.Values))
			for _, v := range c.Values {
				values = append(values, v)
			}
			and = append(and, bson.D{{Key: c.Field, Value: bson.D{{Key: "$all", Value: values}}}})
		}
	}
	return bson.D{{Key: "$and", Value: and}}
}

// equalsValue matches a query string against its literal form and, when it
// parses as a bool or number, that typed value too.
func equalsValue(raw string) any {
	var typed any
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		typed = b
	} else if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		typed = i
	} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
		typed = f
	}
	if typed == nil {
		return raw
	}
	return bson.D{{Key: "$in", Value: bson.A{raw, typed}}}
}
