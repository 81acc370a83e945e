package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// itemService provides CRUD over inventory items.
type itemService struct {
	itemRepo portsrepo.ItemRepositoryFacade
}

// NewItemService creates a new item service.
func NewItemService(itemRepo portsrepo.ItemRepositoryFacade) portssvc.ItemSvcFacade {
	return &itemService{itemRepo: itemRepo}
}

var _ portssvc.ItemSvcFacade = (*itemService)(nil)

// CreateItem persists a new item for the user.
func (s *itemService) CreateItem(ctx context.Context, userID string, req dto.CreateItemRequest) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	item := req.ToDomainItem()
	item.ItemID = uuid.NewString()
	item.UserID = userID
	item.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		logger.Error("Failed to save item", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	logger.Info("Item created", slog.String("item_id", item.ItemID))
	return &item, nil
}

// GetItemByID retrieves an item owned by the user.
func (s *itemService) GetItemByID(ctx context.Context, userID string, itemID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	if item.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return item, nil
}

// ListItems retrieves all items owned by the user.
func (s *itemService) ListItems(ctx context.Context, userID string) ([]domain.Item, error) {
	items, err := s.itemRepo.ListItemsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	return items, nil
}

// UpdateItem applies a partial update to an item owned by the user.
func (s *itemService) UpdateItem(ctx context.Context, userID string, itemID string, req dto.UpdateItemRequest) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.GetItemByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		item.Name = *req.Name
		updated = true
	}
	if req.SellingPrice != nil {
		item.SellingPrice = numeric.LenientDecimal(*req.SellingPrice)
		updated = true
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = numeric.LenientDecimal(*req.PurchasePrice)
		updated = true
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
		updated = true
	}
	if req.HSNCode != nil {
		item.HSNCode = *req.HSNCode
		updated = true
	}
	if req.StockQuantity != nil {
		item.StockQuantity = numeric.LenientDecimal(*req.StockQuantity)
		updated = true
	}
	if req.LowStockThreshold != nil {
		item.LowStockThreshold = numeric.LenientDecimal(*req.LowStockThreshold)
		updated = true
	}

	if !updated {
		return item, nil
	}

	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = userID

	if err := s.itemRepo.UpdateItem(ctx, *item); err != nil {
		logger.Error("Failed to update item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item owned by the user.
func (s *itemService) DeleteItem(ctx context.Context, userID string, itemID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetItemByID(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.itemRepo.DeleteItem(ctx, itemID); err != nil {
		logger.Error("Failed to delete item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}

	logger.Info("Item deleted", slog.String("item_id", itemID))
	return nil
}
