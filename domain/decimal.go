package domain

import "github.com/shopspring/decimal"

// Money fields are sent as JSON numbers so clients can do arithmetic on them.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
