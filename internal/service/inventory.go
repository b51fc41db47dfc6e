package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type inventoryService struct {
	itemRepo repository.ItemRepository
}

func NewInventoryService(itemRepo repository.ItemRepository) InventoryService {
	return &inventoryService{itemRepo: itemRepo}
}

func (s *inventoryService) AddItem(ctx context.Context, item *domain.Item) error {
	if item.ItemID == 0 || item.ItemName == "" {
		return fmt.Errorf("%w: item id and name are required", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if item.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}
	if item.Category == "" {
		item.Category = "General"
	}
	item.IsActive = true

	if _, err := s.itemRepo.GetByItemID(ctx, item.ItemID); err == nil {
		return ErrDuplicateItem
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return s.itemRepo.Create(ctx, item)
}

func (s *inventoryService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, filters repository.ItemFilters) ([]domain.Item, error) {
	return s.itemRepo.List(ctx, filters)
}

func (s *inventoryService) ListLowStock(ctx context.Context, threshold int32) ([]domain.Item, error) {
	return s.itemRepo.ListLowStock(ctx, threshold)
}

func (s *inventoryService) UpdateItem(ctx context.Context, item *domain.Item) error {
	if item.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	err := s.itemRepo.Update(ctx, item)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	return err
}

func (s *inventoryService) DeactivateItem(ctx context.Context, id int64) error {
	err := s.itemRepo.Deactivate(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	return err
}

func (s *inventoryService) InventoryValue(ctx context.Context) (float64, error) {
	return s.itemRepo.InventoryValue(ctx)
}
