package domain

import "github.com/shopspring/decimal"

// Service is sold as a single unit; Commission is the revenue per sale.
type Service struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Commission  decimal.Decimal `db:"commission" json:"commission"`
	ImagePath   string          `db:"image_path" json:"imagePath"`
}

type ServiceInput struct {
	Name        *string          `json:"name" validate:"required,min=1,max=255"`
	Description *string          `json:"description" validate:"required,max=255"`
	Commission  *decimal.Decimal `json:"commission" validate:"required"`
	ImagePath   string           `json:"imagePath" validate:"max=500"`
}

type ServicePatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Commission  *decimal.Decimal `json:"commission"`
	ImagePath   *string          `json:"imagePath" validate:"omitempty,max=500"`
}
