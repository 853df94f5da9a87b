// Package resource builds typed CRUD accessors for REST collections on top
// of the HTTP client, with optional read-through caching of listings and
// entity details. Mutations invalidate the affected cache keys.
package resource

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dealgrid/dealgrid-go/cache"
	"github.com/dealgrid/dealgrid-go/httpclient"
	"github.com/dealgrid/dealgrid-go/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTTL is how long cached responses stay fresh unless overridden.
const DefaultTTL = 5 * time.Minute

// Page is one typed page of a listed collection.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Option customizes a Resource.
type Option func(*settings)

type settings struct {
	name  string
	cache cache.Cache
	ttl   time.Duration
	log   logger.Logger
}

// WithName overrides the cache key namespace derived from the path.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithCache enables read-through caching with the given TTL.
// A ttl of 0 uses DefaultTTL.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *settings) {
		s.cache = c
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used to report soft cache failures.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) { s.log = log }
}

// Resource exposes typed CRUD operations for one REST collection.
type Resource[T any] struct {
	client httpclient.Client
	path   string
	keys   Keys
	cache  cache.Cache
	ttl    time.Duration
	log    logger.Logger
}

// New creates a Resource for the collection at path, e.g. "/deals".
func New[T any](client httpclient.Client, path string, opts ...Option) *Resource[T] {
	s := settings{ttl: DefaultTTL, log: logger.Noop{}}
	for _, opt := range opts {
		opt(&s)
	}
	if s.name == "" {
		s.name = strings.ReplaceAll(strings.Trim(path, "/"), "/", ":")
	}

	return &Resource[T]{
		client: client,
		path:   strings.TrimRight(path, "/"),
		keys:   NewKeys(s.name),
		cache:  s.cache,
		ttl:    s.ttl,
		log:    s.log,
	}
}

// Keys exposes the resource's cache key builder.
func (r *Resource[T]) Keys() Keys {
	return r.keys
}

// List fetches one page of the collection, serving from cache when a fresh
// copy of the same filtered page exists.
func (r *Resource[T]) List(ctx context.Context, req httpclient.PageRequest) (Page[T], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = httpclient.DefaultPageLimit
	}

	filters := make(map[string]any, len(req.Query)+2)
	for name, value := range req.Query {
		filters[name] = value
	}
	filters["page"] = req.Page
	filters["limit"] = req.Limit
	key := r.keys.List(filters)

	var page Page[T]
	if r.cacheRead(ctx, key, &page) {
		return page, nil
	}

	raw, err := r.client.GetPaginated(ctx, r.path, req)
	if err != nil {
		return Page[T]{}, err
	}

	items, err := decodeAs[[]T](raw.Items)
	if err != nil {
		return Page[T]{}, err
	}
	page = Page[T]{
		Items:      items,
		Page:       raw.Page,
		Limit:      raw.Limit,
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
	}

	r.cacheWrite(ctx, key, page)
	return page, nil
}

// Get fetches a single entity by id, serving from cache when possible.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	key := r.keys.Detail(id)

	var entity T
	if r.cacheRead(ctx, key, &entity) {
		return entity, nil
	}

	raw, err := r.client.Get(ctx, r.entityPath(id), nil)
	if err != nil {
		return entity, err
	}

	entity, err = decodeAs[T](raw)
	if err != nil {
		return entity, err
	}

	r.cacheWrite(ctx, key, entity)
	return entity, nil
}

// Create posts a new entity and invalidates cached listings.
func (r *Resource[T]) Create(ctx context.Context, input any) (T, error) {
	var entity T
	raw, err := r.client.Post(ctx, r.path, &httpclient.RequestOptions{Body: input})
	if err != nil {
		return entity, err
	}

	entity, err = decodeAs[T](raw)
	if err != nil {
		return entity, err
	}

	r.invalidateListings(ctx)
	return entity, nil
}

// Update patches an entity and invalidates both its detail key and all
// cached listings.
func (r *Resource[T]) Update(ctx context.Context, id string, input any) (T, error) {
	var entity T
	raw, err := r.client.Patch(ctx, r.entityPath(id), &httpclient.RequestOptions{Body: input})
	if err != nil {
		return entity, err
	}

	entity, err = decodeAs[T](raw)
	if err != nil {
		return entity, err
	}

	r.invalidateEntity(ctx, id)
	return entity, nil
}

// Remove deletes an entity and invalidates the affected cache keys.
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	if _, err := r.client.Delete(ctx, r.entityPath(id), nil); err != nil {
		return err
	}
	r.invalidateEntity(ctx, id)
	return nil
}

// Invalidate drops every cached key of the collection.
func (r *Resource[T]) Invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if _, err := r.cache.DeletePrefix(ctx, r.keys.Prefix()); err != nil {
		r.log.Warn().Err(err).Str("prefix", r.keys.Prefix()).Msg("Cache invalidation failed")
	}
}

func (r *Resource[T]) entityPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// cacheRead returns true when key was found and decoded into out.
// Cache failures are logged and treated as misses.
func (r *Resource[T]) cacheRead(ctx context.Context, key string, out any) bool {
	if r.cache == nil {
		return false
	}

	b, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			r.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Cached value is corrupt, refetching")
		return false
	}
	return true
}

func (r *Resource[T]) cacheWrite(ctx context.Context, key string, value any) {
	if r.cache == nil {
		return
	}

	b, err := json.Marshal(value)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (r *Resource[T]) invalidateListings(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if _, err := r.cache.DeletePrefix(ctx, r.keys.ListPrefix()); err != nil {
		r.log.Warn().Err(err).Str("prefix", r.keys.ListPrefix()).Msg("Cache invalidation failed")
	}
}

func (r *Resource[T]) invalidateEntity(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, r.keys.Detail(id)); err != nil {
		r.log.Warn().Err(err).Str("key", r.keys.Detail(id)).Msg("Cache invalidation failed")
	}
	r.invalidateListings(ctx)
}

func decodeAs[T any](v any) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}
