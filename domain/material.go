package domain

import "github.com/shopspring/decimal"

// Material is a raw input kept in stock. It is never sold directly.
type Material struct {
	ID         int64           `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	Existence  decimal.Decimal `db:"existence" json:"existence"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Supplier   string          `db:"supplier" json:"supplier"`
	BuyLink    string          `db:"buy_link" json:"buyLink"`
	LastIncome string          `db:"last_income" json:"lastIncome"`
	ImagePath  string          `db:"image_path" json:"imagePath"`
}

type MaterialInput struct {
	Name       *string          `json:"name" validate:"required,min=1,max=255"`
	Existence  *decimal.Decimal `json:"existence" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Supplier   *string          `json:"supplier" validate:"required,min=1,max=255"`
	BuyLink    string           `json:"buyLink" validate:"max=1500"`
	LastIncome *string          `json:"lastIncome" validate:"required,datetime=2006-01-02"`
	ImagePath  string           `json:"imagePath" validate:"max=500"`
}

type MaterialPatch struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Existence  *decimal.Decimal `json:"existence"`
	Price      *decimal.Decimal `json:"price"`
	Supplier   *string          `json:"supplier" validate:"omitempty,min=1,max=255"`
	BuyLink    *string          `json:"buyLink" validate:"omitempty,max=1500"`
	LastIncome *string          `json:"lastIncome" validate:"omitempty,datetime=2006-01-02"`
	ImagePath  *string          `json:"imagePath" validate:"omitempty,max=500"`
}
