package repository

import (
	"context"
	"errors"

	"bikeshop-backend/internal/domain"
)

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStockConflict is returned when a guarded stock update touched no rows,
	// meaning a concurrent writer changed the part's stock between the read and
	// the write. The enclosing unit of work must be aborted and may be retried.
	ErrStockConflict = errors.New("stock update conflict")
)

// Store bundles all repositories and the unit-of-work boundary. ExecTx runs fn
// inside a single database transaction; every repository obtained from the
// Store handed to fn participates in that transaction, and all of its writes
// commit together or not at all.
type Store interface {
	Users() UserRepository
	Bikes() BikeRepository
	Parts() PartRepository
	Transactions() TransactionRepository

	ExecTx(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id int32, role domain.Role) error
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) error
	GetByID(ctx context.Context, id int32) (*domain.Bike, error)
	List(ctx context.Context) ([]domain.Bike, error)
	Update(ctx context.Context, bike *domain.Bike) error
	Delete(ctx context.Context, id int32) error
	AddPricePoint(ctx context.Context, bikeID int32, point domain.PricePoint) error
	AddPhoto(ctx context.Context, bikeID int32, path string) error
}

type PartRepository interface {
	Create(ctx context.Context, part *domain.Part) error
	GetByID(ctx context.Context, id int32) (*domain.Part, error)
	// GetByIDForUpdate locks the part row for the duration of the enclosing
	// transaction so concurrent read-modify-write on stock is serialized.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Part, error)
	List(ctx context.Context) ([]domain.Part, error)
	ListBelowStock(ctx context.Context, threshold int32) ([]domain.Part, error)
	Update(ctx context.Context, part *domain.Part) error
	Delete(ctx context.Context, id int32) error
	// ApplyStockDelta adjusts stock_quantity by delta, refusing to drive it
	// negative. Returns ErrStockConflict when the guard rejects the write.
	ApplyStockDelta(ctx context.Context, id int32, delta int32) error
	AddPhoto(ctx context.Context, partID int32, path string) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	ListByItem(ctx context.Context, itemType domain.ItemType, itemID int32) ([]domain.Transaction, error)
	StockHistory(ctx context.Context, partID int32) ([]domain.StockMovement, error)
	Update(ctx context.Context, id int32, patch domain.TransactionPatch) (*domain.Transaction, error)
	Delete(ctx context.Context, id int32) error
}
