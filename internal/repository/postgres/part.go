package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type partRepository struct {
	db DBTX
}

func NewPartRepository(db DBTX) repository.PartRepository {
	return &partRepository{db: db}
}

const partColumns = `id, name, COALESCE(description, ''), price, stock_quantity, bike_ids, photos, created_on, updated_on`

func scanPart(row interface{ Scan(...any) error }) (*domain.Part, error) {
	p := &domain.Part{}
	var price decimal.NullDecimal
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.StockQuantity,
		(*pq.Int32Array)(&p.BikeIDs), (*pq.StringArray)(&p.Photos), &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		p.Price = &price.Decimal
	}
	return p, nil
}

func (r *partRepository) Create(ctx context.Context, p *domain.Part) error {
	query := `INSERT INTO parts (name, description, price, stock_quantity, bike_ids, photos, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	var price decimal.NullDecimal
	if p.Price != nil {
		price = decimal.NullDecimal{Decimal: *p.Price, Valid: true}
	}
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, price, p.StockQuantity,
		pq.Int32Array(p.BikeIDs), pq.StringArray(p.Photos), now).Scan(&p.ID)
}

func (r *partRepository) GetByID(ctx context.Context, id int32) (*domain.Part, error) {
	return r.get(ctx, id, false)
}

func (r *partRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Part, error) {
	return r.get(ctx, id, true)
}

func (r *partRepository) get(ctx context.Context, id int32, forUpdate bool) (*domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanPart(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query part: %w", err)
	}
	return p, nil
}

func (r *partRepository) List(ctx context.Context) ([]domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts ORDER BY name`
	return r.list(ctx, query)
}

func (r *partRepository) ListBelowStock(ctx context.Context, threshold int32) ([]domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE stock_quantity < $1 ORDER BY stock_quantity`
	return r.list(ctx, query, threshold)
}

func (r *partRepository) list(ctx context.Context, query string, args ...any) ([]domain.Part, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, *p)
	}
	return parts, rows.Err()
}

func (r *partRepository) Update(ctx context.Context, p *domain.Part) error {
	query := `UPDATE parts SET name=$1, description=$2, price=$3, stock_quantity=$4, bike_ids=$5, updated_on=$6 WHERE id=$7`
	var price decimal.NullDecimal
	if p.Price != nil {
		price = decimal.NullDecimal{Decimal: *p.Price, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, price, p.StockQuantity,
		pq.Int32Array(p.BikeIDs), time.Now(), p.ID)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return requireRow(res)
}

func (r *partRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return requireRow(res)
}

// ApplyStockDelta moves the stock counter, guarded so it can never go
// negative. A zero rows-affected result means either the row vanished or a
// concurrent writer drained the stock after our locked read; both abort the
// enclosing transaction.
func (r *partRepository) ApplyStockDelta(ctx context.Context, id int32, delta int32) error {
	query := `UPDATE parts SET stock_quantity = stock_quantity + $1, updated_on = $2
	          WHERE id = $3 AND stock_quantity + $1 >= 0`
	res, err := r.db.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if rows == 0 {
		return repository.ErrStockConflict
	}
	return nil
}

func (r *partRepository) AddPhoto(ctx context.Context, partID int32, path string) error {
	query := `UPDATE parts SET photos = array_append(photos, $1), updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, path, time.Now(), partID)
	if err != nil {
		return fmt.Errorf("add part photo: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
