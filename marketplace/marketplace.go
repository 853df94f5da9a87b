// Package marketplace is the typed DealGrid API surface: deal browsing,
// order management and profile access built on the generic HTTP client.
package marketplace

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/dealgrid/dealgrid-go/cache"
	"github.com/dealgrid/dealgrid-go/httpclient"
	"github.com/dealgrid/dealgrid-go/logger"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

// Services bundles the per-resource API services.
type Services struct {
	Deals   *DealService
	Orders  *OrderService
	Profile *ProfileService
}

// Option customizes service construction.
type Option func(*settings)

type settings struct {
	cache cache.Cache
	ttl   time.Duration
	log   logger.Logger
}

// WithCache enables read-through caching of deal listings and details.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *settings) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithLogger sets the logger passed down to the resource helpers.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) { s.log = log }
}

// New wires all services onto one client.
func New(client httpclient.Client, opts ...Option) *Services {
	s := settings{log: logger.Noop{}}
	for _, opt := range opts {
		opt(&s)
	}

	return &Services{
		Deals:   newDealService(client, s),
		Orders:  newOrderService(client, s),
		Profile: newProfileService(client, s),
	}
}

// decodeAs converts a decoded JSON value into a typed model.
func decodeAs[T any](v any) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}
