package service_test

import (
	"context"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStore satisfies repository.Store. ExecTx simply runs fn against the
// same store; commitErr simulates a commit failure after fn succeeds.
type MockStore struct {
	UserRepo  *MockUserRepo
	BikeRepo  *MockBikeRepo
	PartRepo  *MockPartRepo
	TxRepo    *MockTransactionRepo
	commitErr error
}

func NewMockStore() *MockStore {
	return &MockStore{
		UserRepo: new(MockUserRepo),
		BikeRepo: new(MockBikeRepo),
		PartRepo: new(MockPartRepo),
		TxRepo:   new(MockTransactionRepo),
	}
}

func (s *MockStore) Users() repository.UserRepository               { return s.UserRepo }
func (s *MockStore) Bikes() repository.BikeRepository               { return s.BikeRepo }
func (s *MockStore) Parts() repository.PartRepository               { return s.PartRepo }
func (s *MockStore) Transactions() repository.TransactionRepository { return s.TxRepo }

func (s *MockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if err := fn(s); err != nil {
		return err
	}
	return s.commitErr
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id int32, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

type MockBikeRepo struct{ mock.Mock }

func (m *MockBikeRepo) Create(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}

func (m *MockBikeRepo) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}

func (m *MockBikeRepo) List(ctx context.Context) ([]domain.Bike, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bike), args.Error(1)
}

func (m *MockBikeRepo) Update(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}

func (m *MockBikeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBikeRepo) AddPricePoint(ctx context.Context, bikeID int32, point domain.PricePoint) error {
	args := m.Called(ctx, bikeID, point)
	return args.Error(0)
}

func (m *MockBikeRepo) AddPhoto(ctx context.Context, bikeID int32, path string) error {
	args := m.Called(ctx, bikeID, path)
	return args.Error(0)
}

type MockPartRepo struct{ mock.Mock }

func (m *MockPartRepo) Create(ctx context.Context, part *domain.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockPartRepo) GetByID(ctx context.Context, id int32) (*domain.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Part), args.Error(1)
}

func (m *MockPartRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Part), args.Error(1)
}

func (m *MockPartRepo) List(ctx context.Context) ([]domain.Part, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Part), args.Error(1)
}

func (m *MockPartRepo) ListBelowStock(ctx context.Context, threshold int32) ([]domain.Part, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Part), args.Error(1)
}

func (m *MockPartRepo) Update(ctx context.Context, part *domain.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockPartRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPartRepo) ApplyStockDelta(ctx context.Context, id int32, delta int32) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockPartRepo) AddPhoto(ctx context.Context, partID int32, path string) error {
	args := m.Called(ctx, partID, path)
	return args.Error(0)
}

type MockTransactionRepo struct{ mock.Mock }

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) StockHistory(ctx context.Context, partID int32) ([]domain.StockMovement, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockTransactionRepo) Update(ctx context.Context, id int32, patch domain.TransactionPatch) (*domain.Transaction, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
