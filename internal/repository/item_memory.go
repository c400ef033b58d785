package repository

import (
	"context"
	"sync"

	"stockroom-rest-api/internal/model"
	"stockroom-rest-api/internal/quantity"
)

// MemoryItemRepository is the default ItemRepository: a mutex-guarded
// in-memory collection. Items live in a slice so list order stays
// insertion order; an id index avoids scanning on point lookups. The id
// counter only ever advances, so deleted ids are never handed out again.
type MemoryItemRepository struct {
	mu     sync.RWMutex
	items  []model.Item
	index  map[int64]int
	nextID int64
}

// NewMemoryItemRepository creates an empty in-memory item repository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		index:  make(map[int64]int),
		nextID: 1,
	}
}

// List returns a copy of all items in insertion order.
func (r *MemoryItemRepository) List(ctx context.Context) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Create assigns the next id and appends the item.
func (r *MemoryItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++

	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return item, nil
}

// Get returns the item with the given id.
func (r *MemoryItemRepository) Get(ctx context.Context, id int64) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return model.Item{}, ErrNotFound
	}
	return r.items[pos], nil
}

// Update overwrites the fields present in the patch.
func (r *MemoryItemRepository) Update(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return model.Item{}, ErrNotFound
	}

	item := &r.items[pos]
	if patch.ProductName != nil {
		item.ProductName = *patch.ProductName
	}
	if patch.Barcode != nil {
		item.Barcode = *patch.Barcode
	}
	if patch.ProductQuantity != nil {
		item.ProductQuantity = int64(*patch.ProductQuantity)
	}
	return *item, nil
}

// Delete removes the item with the given id.
func (r *MemoryItemRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return ErrNotFound
	}

	r.items = append(r.items[:pos], r.items[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.items); i++ {
		r.index[r.items[i].ID] = i
	}
	return nil
}

// Restock increases the item's quantity by delta.
func (r *MemoryItemRepository) Restock(ctx context.Context, id int64, delta int64) (model.Item, error) {
	return r.adjust(id, delta, quantity.Restock)
}

// Deduct decreases the item's quantity by delta, clamping at zero.
func (r *MemoryItemRepository) Deduct(ctx context.Context, id int64, delta int64) (model.Item, error) {
	return r.adjust(id, delta, quantity.Deduct)
}

func (r *MemoryItemRepository) adjust(id, delta int64, apply func(q, delta int64) int64) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return model.Item{}, ErrNotFound
	}

	item := &r.items[pos]
	item.ProductQuantity = apply(item.ProductQuantity, delta)
	return *item, nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryItemRepository) Close() error {
	return nil
}

// Ensure MemoryItemRepository implements ItemRepository
var _ ItemRepository = (*MemoryItemRepository)(nil)
