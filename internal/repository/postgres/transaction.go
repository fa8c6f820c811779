package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, type, item_type, item_id, quantity, amount, user_id, created_on`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(&t.ID, &t.Type, &t.ItemType, &t.ItemID, &t.Quantity, &t.Amount, &t.UserID, &t.CreatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (type, item_type, item_id, quantity, amount, user_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, t.Type, t.ItemType, t.ItemID, t.Quantity, t.Amount, t.UserID, time.Now()).
		Scan(&t.ID, &t.CreatedOn)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	return t, nil
}

func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_on DESC`
	return r.list(ctx, query)
}

// ListByItem returns one item's transactions in chronological order.
func (r *transactionRepository) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int32) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE item_type = $1 AND item_id = $2 ORDER BY created_on`
	return r.list(ctx, query, itemType, itemID)
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *t)
	}
	return txs, rows.Err()
}

func (r *transactionRepository) StockHistory(ctx context.Context, partID int32) ([]domain.StockMovement, error) {
	query := `SELECT type, quantity, amount, created_on FROM transactions
	          WHERE item_type = 'part' AND item_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, partID)
	if err != nil {
		return nil, fmt.Errorf("query stock history: %w", err)
	}
	defer rows.Close()

	var moves []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(&m.Type, &m.Quantity, &m.Amount, &m.CreatedOn); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Update applies an administrative correction and returns the updated row.
// The stock counter is deliberately left alone.
func (r *transactionRepository) Update(ctx context.Context, id int32, patch domain.TransactionPatch) (*domain.Transaction, error) {
	query := `UPDATE transactions SET
	            quantity = COALESCE($1, quantity),
	            amount   = COALESCE($2, amount)
	          WHERE id = $3
	          RETURNING ` + transactionColumns
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, patch.Quantity, patch.Amount, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}
