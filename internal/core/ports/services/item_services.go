package services

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// ItemSvcFacade defines inventory item operations exposed to handlers.
type ItemSvcFacade interface {
	CreateItem(ctx context.Context, userID string, req dto.CreateItemRequest) (*domain.Item, error)
	GetItemByID(ctx context.Context, userID string, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, userID string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, userID string, itemID string, req dto.UpdateItemRequest) (*domain.Item, error)
	DeleteItem(ctx context.Context, userID string, itemID string) error
}
