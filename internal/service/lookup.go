package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stockroom-rest-api/internal/cache"
	"stockroom-rest-api/internal/model"
	"stockroom-rest-api/internal/off"
	"stockroom-rest-api/pkg/apierror"
)

// LookupService fetches products from the external database, normalizes
// them, and can materialize an item from the result. Successful lookups
// are cached; failures never are.
type LookupService struct {
	client *off.Client
	items  *ItemService
	cache  cache.Cache
	ttl    time.Duration
}

// NewLookupService creates a new lookup service. cache may be nil to
// disable caching.
func NewLookupService(client *off.Client, items *ItemService, c cache.Cache, ttl time.Duration) *LookupService {
	if client == nil || items == nil {
		return nil
	}
	return &LookupService{
		client: client,
		items:  items,
		cache:  c,
		ttl:    ttl,
	}
}

// Lookup fetches and normalizes a single product by barcode.
func (s *LookupService) Lookup(ctx context.Context, barcode string) (off.NormalizedProduct, error) {
	if s.cache == nil {
		return s.lookup(ctx, barcode)
	}

	data, err := s.cache.GetOrSet(ctx, "lookup:"+barcode, s.ttl, func() ([]byte, error) {
		n, err := s.lookup(ctx, barcode)
		if err != nil {
			return nil, err
		}
		return json.Marshal(n)
	})
	if err != nil {
		return off.NormalizedProduct{}, err
	}

	var n off.NormalizedProduct
	if err := json.Unmarshal(data, &n); err != nil {
		// corrupt cache entry; fetch fresh
		return s.lookup(ctx, barcode)
	}
	return n, nil
}

func (s *LookupService) lookup(ctx context.Context, barcode string) (off.NormalizedProduct, error) {
	env, err := s.client.FetchByBarcode(ctx, barcode)
	if err != nil {
		return off.NormalizedProduct{}, err
	}

	n := off.NormalizeLookup(env)
	if n.Barcode == "" {
		n.Barcode = barcode
	}
	return n, nil
}

// Search queries the external database by name and returns normalized
// summaries. An empty result list is a valid answer.
func (s *LookupService) Search(ctx context.Context, name string, limit int) ([]off.NormalizedProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierror.BadRequest("name is required")
	}

	if s.cache == nil {
		return s.search(ctx, name, limit)
	}

	data, err := s.cache.GetOrSet(ctx, fmt.Sprintf("search:%s:%d", name, limit), s.ttl, func() ([]byte, error) {
		results, err := s.search(ctx, name, limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(results)
	})
	if err != nil {
		return nil, err
	}

	var results []off.NormalizedProduct
	if err := json.Unmarshal(data, &results); err != nil {
		// corrupt cache entry; fetch fresh
		return s.search(ctx, name, limit)
	}
	if results == nil {
		results = []off.NormalizedProduct{}
	}
	return results, nil
}

func (s *LookupService) search(ctx context.Context, name string, limit int) ([]off.NormalizedProduct, error) {
	products, err := s.client.SearchByName(ctx, name, limit)
	if err != nil {
		return nil, err
	}

	normalized := make([]off.NormalizedProduct, 0, len(products))
	for _, p := range products {
		normalized = append(normalized, off.NormalizeSearchProduct(p))
	}
	return normalized, nil
}

// CreateFromLookup fetches a product by barcode and creates an item
// prefilled from it. The stored barcode falls back to the one the
// caller asked for when the upstream payload carries none.
func (s *LookupService) CreateFromLookup(ctx context.Context, barcode string) (model.Item, error) {
	n, err := s.Lookup(ctx, barcode)
	if err != nil {
		return model.Item{}, err
	}

	req := model.CreateItemRequest{
		ProductName:     n.ProductName,
		Barcode:         n.Barcode,
		ProductQuantity: model.FlexInt(n.ProductQuantity),
	}
	if req.Barcode == "" {
		req.Barcode = barcode
	}

	return s.items.Create(ctx, req)
}
