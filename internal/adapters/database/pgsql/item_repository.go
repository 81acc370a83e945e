package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
)

// PgxItemRepository persists inventory items.
type PgxItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new repository for item data.
func NewItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{pool: pool}
}

var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

const itemColumns = `item_id, user_id, name, selling_price, purchase_price, unit, hsn_code,
	stock_quantity, low_stock_threshold, created_at, created_by, last_updated_at, last_updated_by`

// SaveItem persists a new item.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		item.ItemID,
		item.UserID,
		item.Name,
		item.SellingPrice,
		item.PurchasePrice,
		item.Unit,
		item.HSNCode,
		item.StockQuantity,
		item.LowStockThreshold,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item %s: %w", item.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves a specific item by its identifier.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1;`

	var item domain.Item
	err := r.pool.QueryRow(ctx, query, itemID).Scan(
		&item.ItemID,
		&item.UserID,
		&item.Name,
		&item.SellingPrice,
		&item.PurchasePrice,
		&item.Unit,
		&item.HSNCode,
		&item.StockQuantity,
		&item.LowStockThreshold,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}
	return &item, nil
}

// ListItemsByUser retrieves all items owned by a user.
func (r *PgxItemRepository) ListItemsByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ItemID,
			&item.UserID,
			&item.Name,
			&item.SellingPrice,
			&item.PurchasePrice,
			&item.Unit,
			&item.HSNCode,
			&item.StockQuantity,
			&item.LowStockThreshold,
			&item.CreatedAt,
			&item.CreatedBy,
			&item.LastUpdatedAt,
			&item.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

// UpdateItem updates an existing item; ErrNotFound if absent.
func (r *PgxItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	query := `
		UPDATE items
		SET name = $2, selling_price = $3, purchase_price = $4, unit = $5, hsn_code = $6,
			stock_quantity = $7, low_stock_threshold = $8, last_updated_at = $9, last_updated_by = $10
		WHERE item_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		item.ItemID,
		item.Name,
		item.SellingPrice,
		item.PurchasePrice,
		item.Unit,
		item.HSNCode,
		item.StockQuantity,
		item.LowStockThreshold,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteItem removes an item.
func (r *PgxItemRepository) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
