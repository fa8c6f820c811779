package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a stock-tracked inventory item. StockQuantity never goes negative;
// sales are rejected when the requested quantity exceeds it.
type Part struct {
	ID            int32            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity int32            `json:"stock_quantity"`
	BikeIDs       []int32          `json:"bike_ids"` // compatible bikes
	Photos        []string         `json:"photos"`
	CreatedOn     time.Time        `json:"created_on"`
	UpdatedOn     time.Time        `json:"updated_on"`
}
