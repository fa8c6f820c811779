package service

import (
	"context"

	"bikeshop-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, actorID int32, username, password string, role domain.Role) (*domain.User, error)
	UpdateRole(ctx context.Context, actorID, userID int32, role domain.Role) error
}

type BikeService interface {
	CreateBike(ctx context.Context, bike *domain.Bike) error
	GetBike(ctx context.Context, id int32) (*domain.Bike, error)
	ListBikes(ctx context.Context) ([]domain.Bike, error)
	UpdateBike(ctx context.Context, id int32, update BikeUpdate) (*domain.Bike, error)
	DeleteBike(ctx context.Context, id int32) error
}

// BikeUpdate carries the mutable bike fields; nil means leave unchanged.
// Setting NewPrice also appends a price-history entry.
type BikeUpdate struct {
	Name          *string
	Model         *string
	Year          *int32
	NewPrice      *decimal.Decimal
	Description   *string
	PartIDs       []int32
	StockQuantity *int32
}

type PartService interface {
	CreatePart(ctx context.Context, part *domain.Part) error
	GetPart(ctx context.Context, id int32) (*domain.Part, error)
	ListParts(ctx context.Context) ([]domain.Part, error)
	UpdatePart(ctx context.Context, part *domain.Part) error
	DeletePart(ctx context.Context, id int32) error
}

// TransactionService is the inventory-affecting core. RecordTransaction runs
// the whole read-validate-mutate-append sequence inside one atomic scope.
type TransactionService interface {
	RecordTransaction(ctx context.Context, in RecordTransactionInput, actingUserID int32) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error)
	ListByItem(ctx context.Context, itemType domain.ItemType, itemID int32) ([]domain.Transaction, error)
	GetPartStockHistory(ctx context.Context, partID int32) ([]domain.StockMovement, error)
	UpdateTransaction(ctx context.Context, id int32, patch domain.TransactionPatch) (*domain.Transaction, error)
	RemoveTransaction(ctx context.Context, id int32) error
}

type PhotoService interface {
	GetUploadURL(ctx context.Context, filename, contentType string) (key, uploadURL string, err error)
	AttachPhoto(ctx context.Context, itemType domain.ItemType, itemID int32, key string) error
	GetDownloadURL(ctx context.Context, key string) (string, error)
}

type EmailService interface {
	SendLowStockReport(ctx context.Context, to []string, parts []domain.Part) error
}
