package domain

import "github.com/shopspring/decimal"

// DailySale accumulates every sale of one item on one calendar day.
// ItemName is the display name captured by the first sale of the day.
type DailySale struct {
	ID               int64           `db:"id" json:"id"`
	ItemKind         ItemKind        `db:"item_kind" json:"itemKind"`
	ItemID           int64           `db:"item_id" json:"itemId"`
	ItemName         string          `db:"item_name" json:"itemName"`
	Date             string          `db:"sale_date" json:"date"`
	UnitsOut         int64           `db:"units_out" json:"unitsOut"`
	RevenueGenerated decimal.Decimal `db:"revenue_generated" json:"revenueGenerated"`
}
