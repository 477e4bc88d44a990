package domain

import "github.com/shopspring/decimal"

// Order is a customer job with a fixed price, sold as one unit.
type Order struct {
	ID           int64           `db:"id" json:"id"`
	Finished     bool            `db:"finished" json:"finished"`
	Date         string          `db:"order_date" json:"date"`
	Description  string          `db:"description" json:"description"`
	CustomerName string          `db:"customer_name" json:"customerName"`
	PhoneNumber  string          `db:"phone_number" json:"phoneNumber"`
	Price        decimal.Decimal `db:"price" json:"price"`
}

type OrderInput struct {
	Finished     bool             `json:"finished"`
	Date         *string          `json:"date" validate:"required,datetime=2006-01-02"`
	Description  *string          `json:"description" validate:"required,min=1,max=255"`
	CustomerName *string          `json:"customerName" validate:"required,min=1,max=255"`
	PhoneNumber  string           `json:"phoneNumber" validate:"omitempty,numeric,max=20"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
}

type OrderPatch struct {
	Finished     *bool            `json:"finished"`
	Date         *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description  *string          `json:"description" validate:"omitempty,min=1,max=255"`
	CustomerName *string          `json:"customerName" validate:"omitempty,min=1,max=255"`
	PhoneNumber  *string          `json:"phoneNumber" validate:"omitempty,numeric,max=20"`
	Price        *decimal.Decimal `json:"price"`
}
