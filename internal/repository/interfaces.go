package repository

import (
	"context"
	"errors"

	"stockroom-rest-api/internal/model"
)

// ErrNotFound is returned when no item has the requested id.
var ErrNotFound = errors.New("item not found")

// ItemRepository defines item data access methods. Implementations must
// keep list order equal to insertion order, never reuse ids, and never
// let a quantity go negative.
type ItemRepository interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Create assigns the next id to the item and stores it.
	Create(ctx context.Context, item model.Item) (model.Item, error)

	// Get returns the item with the given id.
	Get(ctx context.Context, id int64) (model.Item, error)

	// Update overwrites the fields present in the patch.
	Update(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error)

	// Delete removes the item with the given id.
	Delete(ctx context.Context, id int64) error

	// Restock increases the item's quantity by delta.
	Restock(ctx context.Context, id int64, delta int64) (model.Item, error)

	// Deduct decreases the item's quantity by delta, clamping at zero.
	Deduct(ctx context.Context, id int64, delta int64) (model.Item, error)

	// Close closes the repository.
	Close() error
}
