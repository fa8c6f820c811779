package service

import (
	"context"
	"errors"
	"fmt"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
)

type partService struct {
	partRepo repository.PartRepository
}

func NewPartService(partRepo repository.PartRepository) PartService {
	return &partService{partRepo: partRepo}
}

func (s *partService) CreatePart(ctx context.Context, part *domain.Part) error {
	if err := validatePart(part); err != nil {
		return err
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

func (s *partService) GetPart(ctx context.Context, id int32) (*domain.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("part %d: %w", id, ErrItemNotFound)
	}
	return part, err
}

func (s *partService) ListParts(ctx context.Context) ([]domain.Part, error) {
	return s.partRepo.List(ctx)
}

// UpdatePart is the item-management path: admins may set stock directly here
// (a recount, say). Transaction-driven stock changes go through the
// transaction coordinator instead.
func (s *partService) UpdatePart(ctx context.Context, part *domain.Part) error {
	if err := validatePart(part); err != nil {
		return err
	}
	err := s.partRepo.Update(ctx, part)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("part %d: %w", part.ID, ErrItemNotFound)
	}
	return err
}

func (s *partService) DeletePart(ctx context.Context, id int32) error {
	err := s.partRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("part %d: %w", id, ErrItemNotFound)
	}
	return err
}

func validatePart(part *domain.Part) error {
	if part.Price != nil && part.Price.IsNegative() {
		return fmt.Errorf("price: %w", ErrNegativeValue)
	}
	if part.StockQuantity < 0 {
		return fmt.Errorf("stock quantity: %w", ErrNegativeValue)
	}
	return nil
}
