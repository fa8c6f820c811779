package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
)

var ErrNegativeValue = errors.New("value must not be negative")

type bikeService struct {
	bikeRepo repository.BikeRepository
}

func NewBikeService(bikeRepo repository.BikeRepository) BikeService {
	return &bikeService{bikeRepo: bikeRepo}
}

// CreateBike stores the bike and seeds its price history with the initial
// price, if one was given.
func (s *bikeService) CreateBike(ctx context.Context, bike *domain.Bike) error {
	if bike.Price != nil && bike.Price.IsNegative() {
		return fmt.Errorf("price: %w", ErrNegativeValue)
	}
	if bike.StockQuantity < 0 {
		return fmt.Errorf("stock quantity: %w", ErrNegativeValue)
	}
	if err := s.bikeRepo.Create(ctx, bike); err != nil {
		return fmt.Errorf("create bike: %w", err)
	}
	if bike.Price != nil {
		point := domain.PricePoint{Price: *bike.Price, RecordedOn: time.Now()}
		if err := s.bikeRepo.AddPricePoint(ctx, bike.ID, point); err != nil {
			return err
		}
		bike.PriceHistory = []domain.PricePoint{point}
	}
	return nil
}

func (s *bikeService) GetBike(ctx context.Context, id int32) (*domain.Bike, error) {
	bike, err := s.bikeRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("bike %d: %w", id, ErrItemNotFound)
	}
	return bike, err
}

func (s *bikeService) ListBikes(ctx context.Context) ([]domain.Bike, error) {
	return s.bikeRepo.List(ctx)
}

// UpdateBike applies the non-nil fields of update. A new price is appended to
// the bike's price history, matching how the shop tracks repricing over time.
func (s *bikeService) UpdateBike(ctx context.Context, id int32, update BikeUpdate) (*domain.Bike, error) {
	bike, err := s.bikeRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("bike %d: %w", id, ErrItemNotFound)
	}
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		bike.Name = *update.Name
	}
	if update.Model != nil {
		bike.Model = *update.Model
	}
	if update.Year != nil {
		bike.Year = *update.Year
	}
	if update.Description != nil {
		bike.Description = *update.Description
	}
	if update.PartIDs != nil {
		bike.PartIDs = update.PartIDs
	}
	if update.StockQuantity != nil {
		if *update.StockQuantity < 0 {
			return nil, fmt.Errorf("stock quantity: %w", ErrNegativeValue)
		}
		bike.StockQuantity = *update.StockQuantity
	}

	var repriced bool
	if update.NewPrice != nil {
		if update.NewPrice.IsNegative() {
			return nil, fmt.Errorf("price: %w", ErrNegativeValue)
		}
		bike.Price = update.NewPrice
		repriced = true
	}

	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		return nil, fmt.Errorf("update bike: %w", err)
	}
	if repriced {
		point := domain.PricePoint{Price: *update.NewPrice, RecordedOn: time.Now()}
		if err := s.bikeRepo.AddPricePoint(ctx, bike.ID, point); err != nil {
			return nil, err
		}
		bike.PriceHistory = append(bike.PriceHistory, point)
	}
	return bike, nil
}

func (s *bikeService) DeleteBike(ctx context.Context, id int32) error {
	err := s.bikeRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("bike %d: %w", id, ErrItemNotFound)
	}
	return err
}
