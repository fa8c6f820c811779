package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeSale     TransactionType = "sale"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypePurchase || t == TransactionTypeSale
}

type ItemType string

const (
	ItemTypeBike ItemType = "bike"
	ItemTypePart ItemType = "part"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeBike || t == ItemTypePart
}

// Transaction is one committed inventory movement. Once written it is the
// authoritative record of the stock delta it applied; administrative edits
// never recompute or reverse that delta.
type Transaction struct {
	ID        int32           `json:"id"`
	Type      TransactionType `json:"type"`
	ItemType  ItemType        `json:"item_type"`
	ItemID    int32           `json:"item_id"`
	Quantity  int32           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	UserID    int32           `json:"user_id"`
	CreatedOn time.Time       `json:"created_on"`
}

// StockDelta is the signed change a transaction applies to part stock.
func (t *Transaction) StockDelta() int32 {
	if t.Type == TransactionTypeSale {
		return -t.Quantity
	}
	return t.Quantity
}

// StockMovement is the per-part history projection: what moved, when, for how
// much.
type StockMovement struct {
	Type      TransactionType `json:"type"`
	Quantity  int32           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedOn time.Time       `json:"created_on"`
}

// TransactionPatch is an administrative correction to a ledger entry. Nil
// fields are left unchanged. Patching quantity or amount does NOT touch the
// stock counter the original transaction moved.
type TransactionPatch struct {
	Quantity *int32           `json:"quantity,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}
