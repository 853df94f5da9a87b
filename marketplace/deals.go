package marketplace

import (
	"context"

	"github.com/dealgrid/dealgrid-go/httpclient"
	"github.com/dealgrid/dealgrid-go/resource"
)

const dealsPath = "/deals"

// DealService browses the deal catalog. Reads go through the resource
// cache when one is configured.
type DealService struct {
	client httpclient.Client
	res    *resource.Resource[Deal]
}

func newDealService(client httpclient.Client, s settings) *DealService {
	opts := []resource.Option{resource.WithLogger(s.log)}
	if s.cache != nil {
		opts = append(opts, resource.WithCache(s.cache, s.ttl))
	}
	return &DealService{
		client: client,
		res:    resource.New[Deal](client, dealsPath, opts...),
	}
}

// List returns one page of deals matching the filter.
func (s *DealService) List(ctx context.Context, page, limit int, filter DealFilter) (resource.Page[Deal], error) {
	return s.res.List(ctx, httpclient.PageRequest{
		Page:  page,
		Limit: limit,
		Query: filter.query(),
	})
}

// Get returns a single deal by id.
func (s *DealService) Get(ctx context.Context, id string) (Deal, error) {
	return s.res.Get(ctx, id)
}

// Search runs a free-text search over the catalog. Results bypass the cache.
func (s *DealService) Search(ctx context.Context, term string, page, limit int) (resource.Page[Deal], error) {
	raw, err := s.client.GetPaginated(ctx, dealsPath+"/search", httpclient.PageRequest{
		Page:  page,
		Limit: limit,
		Query: map[string]any{"q": term},
	})
	if err != nil {
		return resource.Page[Deal]{}, err
	}

	items, err := decodeAs[[]Deal](raw.Items)
	if err != nil {
		return resource.Page[Deal]{}, err
	}
	return resource.Page[Deal]{
		Items:      items,
		Page:       raw.Page,
		Limit:      raw.Limit,
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
	}, nil
}

// Featured returns the curated front-page selection.
func (s *DealService) Featured(ctx context.Context) ([]Deal, error) {
	raw, err := s.client.Get(ctx, dealsPath+"/featured", nil)
	if err != nil {
		return nil, err
	}
	return decodeAs[[]Deal](raw)
}
