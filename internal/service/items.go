package service

import (
	"context"
	"errors"
	"strings"

	"stockroom-rest-api/internal/model"
	"stockroom-rest-api/internal/repository"
	"stockroom-rest-api/pkg/apierror"
)

// ItemService owns validation and update policy over the item repository.
type ItemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new item service.
// Returns nil if repo is nil (required dependency).
func NewItemService(repo repository.ItemRepository) *ItemService {
	if repo == nil {
		return nil
	}
	return &ItemService{repo: repo}
}

// List returns all items in insertion order.
func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Create validates the request and stores a new item. product_name and
// barcode are required; quantity and price default to 0 and must not be
// negative.
func (s *ItemService) Create(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	if strings.TrimSpace(req.ProductName) == "" || strings.TrimSpace(req.Barcode) == "" {
		return model.Item{}, apierror.ValidationError("product_name and barcode are required")
	}
	if req.ProductQuantity < 0 {
		return model.Item{}, apierror.ValidationError("product_quantity must be non-negative")
	}
	if req.PriceCents < 0 {
		return model.Item{}, apierror.ValidationError("price_cents must be non-negative")
	}

	item := model.Item{
		ProductName:     req.ProductName,
		Barcode:         req.Barcode,
		ProductQuantity: int64(req.ProductQuantity),
		PriceCents:      int64(req.PriceCents),
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return model.Item{}, mapRepoError(err)
	}
	return created, nil
}

// Get returns the item with the given id.
func (s *ItemService) Get(ctx context.Context, id int64) (model.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Item{}, mapRepoError(err)
	}
	return item, nil
}

// Update applies a partial update. Only whitelisted fields are touched;
// anything else in the payload was already dropped during decoding.
func (s *ItemService) Update(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	if patch.ProductQuantity != nil && *patch.ProductQuantity < 0 {
		return model.Item{}, apierror.ValidationError("product_quantity must be non-negative")
	}

	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return model.Item{}, mapRepoError(err)
	}
	return item, nil
}

// Delete removes the item with the given id.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// Restock adds delta to the item's quantity.
func (s *ItemService) Restock(ctx context.Context, id int64, delta int64) (model.Item, error) {
	item, err := s.repo.Restock(ctx, id, delta)
	if err != nil {
		return model.Item{}, mapRepoError(err)
	}
	return item, nil
}

// Deduct subtracts delta from the item's quantity, clamping at zero.
func (s *ItemService) Deduct(ctx context.Context, id int64, delta int64) (model.Item, error) {
	item, err := s.repo.Deduct(ctx, id, delta)
	if err != nil {
		return model.Item{}, mapRepoError(err)
	}
	return item, nil
}

// mapRepoError converts repository errors to API errors.
func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NotFound("")
	}
	return err
}
