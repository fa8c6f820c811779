package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedPhotoType = errors.New("unsupported photo content type")
	ErrPhotoNotUploaded     = errors.New("photo has not been uploaded")
)

const uploadURLTTL = 15 * time.Minute

type photoService struct {
	bikeRepo repository.BikeRepository
	partRepo repository.PartRepository
	backend  storage.Backend
}

func NewPhotoService(bikeRepo repository.BikeRepository, partRepo repository.PartRepository, backend storage.Backend) PhotoService {
	return &photoService{bikeRepo: bikeRepo, partRepo: partRepo, backend: backend}
}

// GetUploadURL hands out a fresh storage key and a URL the client PUTs the
// photo bytes to. The key is only attached to an item once AttachPhoto
// confirms the upload landed.
func (s *photoService) GetUploadURL(ctx context.Context, filename, contentType string) (string, string, error) {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif":
	default:
		return "", "", ErrUnsupportedPhotoType
	}

	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	uploadURL, err := s.backend.UploadURL(ctx, key, contentType, uploadURLTTL)
	if err != nil {
		return "", "", fmt.Errorf("generate upload url: %w", err)
	}
	return key, uploadURL, nil
}

func (s *photoService) AttachPhoto(ctx context.Context, itemType domain.ItemType, itemID int32, key string) error {
	exists, err := s.backend.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check photo: %w", err)
	}
	if !exists {
		return ErrPhotoNotUploaded
	}

	switch itemType {
	case domain.ItemTypeBike:
		err = s.bikeRepo.AddPhoto(ctx, itemID, key)
	case domain.ItemTypePart:
		err = s.partRepo.AddPhoto(ctx, itemID, key)
	default:
		return fmt.Errorf("%w: item type must be bike or part", ErrInvalidInput)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", itemType, itemID, ErrItemNotFound)
	}
	return err
}

func (s *photoService) GetDownloadURL(ctx context.Context, key string) (string, error) {
	return s.backend.DownloadURL(ctx, key, uploadURLTTL)
}
