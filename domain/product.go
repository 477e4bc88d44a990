package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID              int64           `db:"id" json:"id"`
	PLU             int64           `db:"plu" json:"plu"`
	Name            string          `db:"name" json:"name"`
	StockQty        int64           `db:"stock_qty" json:"stockQty"`
	CostPrice       decimal.Decimal `db:"cost_price" json:"costPrice"`
	SalePrice       decimal.Decimal `db:"sale_price" json:"salePrice"`
	Supplier        string          `db:"supplier" json:"supplier"`
	LastRestockDate string          `db:"last_restock_date" json:"lastRestockDate"`
	ImagePath       string          `db:"image_path" json:"imagePath"`
}

// ProductInput is the create schema.
type ProductInput struct {
	PLU             *int64           `json:"plu" validate:"required,gte=0"`
	Name            *string          `json:"name" validate:"required,min=1,max=255"`
	StockQty        *int64           `json:"stockQty" validate:"required"`
	CostPrice       *decimal.Decimal `json:"costPrice" validate:"required"`
	SalePrice       *decimal.Decimal `json:"salePrice" validate:"required"`
	Supplier        *string          `json:"supplier" validate:"required,min=1,max=255"`
	LastRestockDate *string          `json:"lastRestockDate" validate:"required,datetime=2006-01-02"`
	ImagePath       string           `json:"imagePath" validate:"max=500"`
}

// ProductPatch is the update schema; nil fields are left untouched.
type ProductPatch struct {
	PLU             *int64           `json:"plu" validate:"omitempty,gte=0"`
	Name            *string          `json:"name" validate:"omitempty,min=1,max=255"`
	StockQty        *int64           `json:"stockQty"`
	CostPrice       *decimal.Decimal `json:"costPrice"`
	SalePrice       *decimal.Decimal `json:"salePrice"`
	Supplier        *string          `json:"supplier" validate:"omitempty,min=1,max=255"`
	LastRestockDate *string          `json:"lastRestockDate" validate:"omitempty,datetime=2006-01-02"`
	ImagePath       *string          `json:"imagePath" validate:"omitempty,max=500"`
}
