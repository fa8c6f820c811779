package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one entry in a bike's price history.
type PricePoint struct {
	Price      decimal.Decimal `json:"price"`
	RecordedOn time.Time       `json:"recorded_on"`
}

// Bike is a display item. Bikes carry a stock_quantity column for showroom
// availability, but transactions never mutate it; only part stock is
// transaction-tracked.
type Bike struct {
	ID            int32            `json:"id"`
	Name          string           `json:"name"`
	Model         string           `json:"model"`
	Year          int32            `json:"year"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Description   string           `json:"description"`
	Photos        []string         `json:"photos"`
	PartIDs       []int32          `json:"part_ids"` // compatible parts
	StockQuantity int32            `json:"stock_quantity"`
	PriceHistory  []PricePoint     `json:"price_history,omitempty"`
	CreatedOn     time.Time        `json:"created_on"`
	UpdatedOn     time.Time        `json:"updated_on"`
}

// Availability mirrors the storefront label derived from stock.
func (b *Bike) Availability() string {
	if b.StockQuantity > 0 {
		return "In Stock"
	}
	return "Out of Stock"
}
