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

type bikeRepository struct {
	db DBTX
}

func NewBikeRepository(db DBTX) repository.BikeRepository {
	return &bikeRepository{db: db}
}

const bikeColumns = `id, name, COALESCE(model, ''), COALESCE(year, 0), price, COALESCE(description, ''), photos, part_ids, stock_quantity, created_on, updated_on`

func scanBike(row interface{ Scan(...any) error }) (*domain.Bike, error) {
	b := &domain.Bike{}
	var price decimal.NullDecimal
	err := row.Scan(&b.ID, &b.Name, &b.Model, &b.Year, &price, &b.Description,
		(*pq.StringArray)(&b.Photos), (*pq.Int32Array)(&b.PartIDs), &b.StockQuantity,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		b.Price = &price.Decimal
	}
	return b, nil
}

func (r *bikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	query := `INSERT INTO bikes (name, model, year, price, description, photos, part_ids, stock_quantity, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	var price decimal.NullDecimal
	if b.Price != nil {
		price = decimal.NullDecimal{Decimal: *b.Price, Valid: true}
	}
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, b.Name, b.Model, b.Year, price, b.Description,
		pq.StringArray(b.Photos), pq.Int32Array(b.PartIDs), b.StockQuantity, now).Scan(&b.ID)
}

func (r *bikeRepository) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE id = $1`
	b, err := scanBike(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query bike: %w", err)
	}

	history, err := r.priceHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	b.PriceHistory = history
	return b, nil
}

func (r *bikeRepository) priceHistory(ctx context.Context, bikeID int32) ([]domain.PricePoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT price, recorded_on FROM bike_price_history WHERE bike_id = $1 ORDER BY recorded_on`, bikeID)
	if err != nil {
		return nil, fmt.Errorf("query price history: %w", err)
	}
	defer rows.Close()

	var history []domain.PricePoint
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.Price, &p.RecordedOn); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		history = append(history, p)
	}
	return history, rows.Err()
}

// List returns bikes without their price history; GetByID loads the full
// record.
func (r *bikeRepository) List(ctx context.Context) ([]domain.Bike, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bikeColumns+` FROM bikes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query bikes: %w", err)
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		b, err := scanBike(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bike: %w", err)
		}
		bikes = append(bikes, *b)
	}
	return bikes, rows.Err()
}

func (r *bikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	query := `UPDATE bikes SET name=$1, model=$2, year=$3, price=$4, description=$5, part_ids=$6, stock_quantity=$7, updated_on=$8 WHERE id=$9`
	var price decimal.NullDecimal
	if b.Price != nil {
		price = decimal.NullDecimal{Decimal: *b.Price, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query, b.Name, b.Model, b.Year, price, b.Description,
		pq.Int32Array(b.PartIDs), b.StockQuantity, time.Now(), b.ID)
	if err != nil {
		return fmt.Errorf("update bike: %w", err)
	}
	return requireRow(res)
}

func (r *bikeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bikes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bike: %w", err)
	}
	return requireRow(res)
}

func (r *bikeRepository) AddPricePoint(ctx context.Context, bikeID int32, point domain.PricePoint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bike_price_history (bike_id, price, recorded_on) VALUES ($1, $2, $3)`,
		bikeID, point.Price, point.RecordedOn)
	if err != nil {
		return fmt.Errorf("insert price point: %w", err)
	}
	return nil
}

func (r *bikeRepository) AddPhoto(ctx context.Context, bikeID int32, path string) error {
	query := `UPDATE bikes SET photos = array_append(photos, $1), updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, path, time.Now(), bikeID)
	if err != nil {
		return fmt.Errorf("add bike photo: %w", err)
	}
	return requireRow(res)
}
