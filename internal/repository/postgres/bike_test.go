package postgres_test

import (
	"context"
	"testing"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bikeCols = []string{"id", "name", "model", "year", "price", "description", "photos", "part_ids", "stock_quantity", "created_on", "updated_on"}

func TestBikeRepository_GetByID_LoadsPriceHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBikeRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM bikes WHERE id = \$1`).
		WithArgs(int32(4)).
		WillReturnRows(sqlmock.NewRows(bikeCols).
			AddRow(4, "Gravel One", "GR-1", 2026, "1200.00", "", "{}", "{1,2}", 1, now, now))
	mock.ExpectQuery(`SELECT price, recorded_on FROM bike_price_history WHERE bike_id = \$1 ORDER BY recorded_on`).
		WithArgs(int32(4)).
		WillReturnRows(sqlmock.NewRows([]string{"price", "recorded_on"}).
			AddRow("1250.00", now.Add(-48*time.Hour)).
			AddRow("1200.00", now))

	bike, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, bike.PartIDs)
	require.Len(t, bike.PriceHistory, 2)
	assert.True(t, bike.PriceHistory[1].Price.Equal(decimal.RequireFromString("1200.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBikeRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBikeRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM bikes WHERE id = \$1`).
		WithArgs(int32(99)).
		WillReturnRows(sqlmock.NewRows(bikeCols))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBikeRepository_AddPricePoint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBikeRepository(db)
	point := domain.PricePoint{Price: decimal.RequireFromString("1099.00"), RecordedOn: time.Now()}

	mock.ExpectExec(`INSERT INTO bike_price_history`).
		WithArgs(int32(4), point.Price, point.RecordedOn).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.AddPricePoint(context.Background(), 4, point))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBikeRepository_AddPhoto(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBikeRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE bikes SET photos = array_append\(photos, \$1\)`).
		WithArgs("a.jpg", sqlmock.AnyArg(), int32(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.AddPhoto(ctx, 4, "a.jpg"))

	mock.ExpectExec(`UPDATE bikes SET photos = array_append\(photos, \$1\)`).
		WithArgs("a.jpg", sqlmock.AnyArg(), int32(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.AddPhoto(ctx, 99, "a.jpg"), repository.ErrNotFound)
}
