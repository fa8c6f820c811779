package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bikeshop-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx. Every
// repository runs against it, so the same implementations serve both plain
// calls and calls inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB

	users        repository.UserRepository
	bikes        repository.BikeRepository
	parts        repository.PartRepository
	transactions repository.TransactionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		users:        NewUserRepository(db),
		bikes:        NewBikeRepository(db),
		parts:        NewPartRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository { return s.users }

func (s *Store) Bikes() repository.BikeRepository { return s.bikes }

func (s *Store) Parts() repository.PartRepository { return s.parts }

func (s *Store) Transactions() repository.TransactionRepository { return s.transactions }

// ExecTx runs fn inside one database transaction. The Store passed to fn wraps
// the open *sql.Tx, so repository calls made through it are part of the same
// atomic scope. fn returning an error rolls everything back; otherwise the
// transaction commits. Nested ExecTx is not supported.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txStore := &Store{
		db:           s.db,
		users:        NewUserRepository(tx),
		bikes:        NewBikeRepository(tx),
		parts:        NewPartRepository(tx),
		transactions: NewTransactionRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
