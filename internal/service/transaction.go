package service

import (
	"context"
	"errors"
	"fmt"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrInvalidPrice        = errors.New("item price is invalid or missing")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionAborted means the atomic scope could not commit (conflict,
	// storage failure, timeout). Neither the item nor the ledger was changed;
	// the caller may retry the whole operation. It is never retried here.
	ErrTransactionAborted = errors.New("transaction aborted")

	ErrInvalidInput = errors.New("invalid transaction input")
)

// InsufficientStockError reports a sale that would drive part stock negative.
type InsufficientStockError struct {
	Available int32
	Requested int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// RecordTransactionInput is the strictly-typed request. Validation happens
// before the atomic scope is opened; the coordinator never coerces types.
type RecordTransactionInput struct {
	Type     domain.TransactionType
	ItemType domain.ItemType
	ItemID   int32
	Quantity int32
	// Amount overrides the derived price*quantity when non-nil and non-zero.
	Amount *decimal.Decimal
}

func (in RecordTransactionInput) Validate() error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: type must be purchase or sale", ErrInvalidInput)
	}
	if !in.ItemType.Valid() {
		return fmt.Errorf("%w: item type must be bike or part", ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return nil
}

type transactionService struct {
	store repository.Store
}

func NewTransactionService(store repository.Store) TransactionService {
	return &transactionService{store: store}
}

// RecordTransaction records one inventory movement atomically: resolve the
// item, validate and apply the stock delta (parts only), determine the amount,
// and append the ledger entry. Any failure rolls the whole scope back, so a
// failed call leaves no observable side effect.
func (s *transactionService) RecordTransaction(ctx context.Context, in RecordTransactionInput, actingUserID int32) (*domain.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Transaction
	err := s.store.ExecTx(ctx, func(st repository.Store) error {
		var price *decimal.Decimal

		switch in.ItemType {
		case domain.ItemTypePart:
			part, err := st.Parts().GetByIDForUpdate(ctx, in.ItemID)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("part %d: %w", in.ItemID, ErrItemNotFound)
			}
			if err != nil {
				return err
			}
			if in.Type == domain.TransactionTypeSale && part.StockQuantity < in.Quantity {
				return &InsufficientStockError{Available: part.StockQuantity, Requested: in.Quantity}
			}
			delta := in.Quantity
			if in.Type == domain.TransactionTypeSale {
				delta = -delta
			}
			if err := st.Parts().ApplyStockDelta(ctx, part.ID, delta); err != nil {
				return err
			}
			price = part.Price

		case domain.ItemTypeBike:
			// Bikes are display-only: the transaction is recorded and priced,
			// but no stock is moved.
			bike, err := st.Bikes().GetByID(ctx, in.ItemID)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("bike %d: %w", in.ItemID, ErrItemNotFound)
			}
			if err != nil {
				return err
			}
			price = bike.Price
		}

		amount, err := resolveAmount(in.Amount, price, in.Quantity)
		if err != nil {
			return err
		}

		tx := &domain.Transaction{
			Type:     in.Type,
			ItemType: in.ItemType,
			ItemID:   in.ItemID,
			Quantity: in.Quantity,
			Amount:   amount,
			UserID:   actingUserID,
		}
		if err := st.Transactions().Create(ctx, tx); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, coordinatorError(err)
	}
	return created, nil
}

// resolveAmount keeps a caller-supplied non-zero amount verbatim, otherwise
// derives price*quantity. A missing or negative price fails the whole scope.
func resolveAmount(supplied *decimal.Decimal, price *decimal.Decimal, quantity int32) (decimal.Decimal, error) {
	if supplied != nil && !supplied.IsZero() {
		return *supplied, nil
	}
	if price == nil || price.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price.Mul(decimal.NewFromInt32(quantity)), nil
}

// coordinatorError passes business failures through untouched and folds
// storage-level failures (conflicts, commit errors) into ErrTransactionAborted.
func coordinatorError(err error) error {
	var insufficient *InsufficientStockError
	switch {
	case errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrInvalidPrice),
		errors.As(err, &insufficient):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
}

func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.Transactions().List(ctx)
}

func (s *transactionService) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	tx, err := s.store.Transactions().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("transaction %d: %w", id, ErrTransactionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int32) ([]domain.Transaction, error) {
	if !itemType.Valid() {
		return nil, fmt.Errorf("%w: item type must be bike or part", ErrInvalidInput)
	}
	return s.store.Transactions().ListByItem(ctx, itemType, itemID)
}

func (s *transactionService) GetPartStockHistory(ctx context.Context, partID int32) ([]domain.StockMovement, error) {
	return s.store.Transactions().StockHistory(ctx, partID)
}

// UpdateTransaction applies an administrative correction to a ledger entry.
// It does NOT recompute or reverse the stock mutation the original
// transaction applied; operators must account for that themselves.
func (s *transactionService) UpdateTransaction(ctx context.Context, id int32, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if patch.Quantity != nil && *patch.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	tx, err := s.store.Transactions().Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("transaction %d: %w", id, ErrTransactionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// RemoveTransaction deletes a ledger entry without reversing its stock effect.
func (s *transactionService) RemoveTransaction(ctx context.Context, id int32) error {
	err := s.store.Transactions().Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("transaction %d: %w", id, ErrTransactionNotFound)
	}
	return err
}
