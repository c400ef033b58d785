package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"stockroom-rest-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteItemRepository implements ItemRepository on SQLite for setups
// that want the collection to outlive a restart. AUTOINCREMENT keeps
// ids monotonic and never reused, matching the memory backend.
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository opens (or creates) the database at dbPath.
func NewSQLiteItemRepository(dbPath string) (*SQLiteItemRepository, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createItemsTable(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteItemRepository] Initialized with database: %s", dbPath)
	return &SQLiteItemRepository{db: db}, nil
}

func createItemsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_name TEXT NOT NULL,
		barcode TEXT NOT NULL,
		product_quantity INTEGER NOT NULL DEFAULT 0,
		price_cents INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := db.Exec(query)
	return err
}

// List returns all items ordered by id, which equals insertion order.
func (r *SQLiteItemRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_name, barcode, product_quantity, price_cents FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.ProductName, &it.Barcode, &it.ProductQuantity, &it.PriceCents); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create inserts the item and returns it with its assigned id.
func (r *SQLiteItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (product_name, barcode, product_quantity, price_cents) VALUES (?, ?, ?, ?)`,
		item.ProductName, item.Barcode, item.ProductQuantity, item.PriceCents)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to read inserted id: %w", err)
	}
	item.ID = id
	return item, nil
}

// Get returns the item with the given id.
func (r *SQLiteItemRepository) Get(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	err := r.db.QueryRowContext(ctx,
		`SELECT id, product_name, barcode, product_quantity, price_cents FROM items WHERE id = ?`, id).
		Scan(&it.ID, &it.ProductName, &it.Barcode, &it.ProductQuantity, &it.PriceCents)
	if err == sql.ErrNoRows {
		return model.Item{}, ErrNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return it, nil
}

// Update overwrites the fields present in the patch.
func (r *SQLiteItemRepository) Update(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if patch.ProductName != nil {
		sets = append(sets, "product_name = ?")
		args = append(args, *patch.ProductName)
	}
	if patch.Barcode != nil {
		sets = append(sets, "barcode = ?")
		args = append(args, *patch.Barcode)
	}
	if patch.ProductQuantity != nil {
		sets = append(sets, "product_quantity = ?")
		args = append(args, int64(*patch.ProductQuantity))
	}

	// A patch with no known fields still succeeds; it just changes nothing.
	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE items SET %s WHERE id = ?", strings.Join(sets, ", "))
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return model.Item{}, fmt.Errorf("failed to update item: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return model.Item{}, err
		}
		if affected == 0 {
			return model.Item{}, ErrNotFound
		}
	}

	return r.Get(ctx, id)
}

// Delete removes the item with the given id.
func (r *SQLiteItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restock increases the item's quantity by delta.
func (r *SQLiteItemRepository) Restock(ctx context.Context, id int64, delta int64) (model.Item, error) {
	return r.adjust(ctx, id, `UPDATE items SET product_quantity = product_quantity + ? WHERE id = ?`, delta)
}

// Deduct decreases the item's quantity by delta, clamping at zero.
func (r *SQLiteItemRepository) Deduct(ctx context.Context, id int64, delta int64) (model.Item, error) {
	return r.adjust(ctx, id, `UPDATE items SET product_quantity = MAX(product_quantity - ?, 0) WHERE id = ?`, delta)
}

func (r *SQLiteItemRepository) adjust(ctx context.Context, id int64, query string, delta int64) (model.Item, error) {
	res, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to adjust quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Item{}, err
	}
	if affected == 0 {
		return model.Item{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Close closes the database connection.
func (r *SQLiteItemRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteItemRepository implements ItemRepository
var _ ItemRepository = (*SQLiteItemRepository)(nil)
