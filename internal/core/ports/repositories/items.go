package repositories

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// ItemReader defines read operations for inventory item data.
type ItemReader interface {
	// FindItemByID retrieves a specific item by its identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// ListItemsByUser retrieves all items owned by a user.
	ListItemsByUser(ctx context.Context, userID string) ([]domain.Item, error)
}

// ItemWriter defines write operations for inventory item data.
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem updates an existing item; ErrNotFound if absent.
	UpdateItem(ctx context.Context, item domain.Item) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, itemID string) error
}

// ItemRepositoryFacade combines all item repository interfaces.
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
