package domain

// ItemKind tags the source entity of a sale so ids from different tables never share a DailySale row.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindService ItemKind = "service"
	KindOrder   ItemKind = "order"
)

// Valid reports whether k is one of the sellable kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindProduct, KindService, KindOrder:
		return true
	}
	return false
}

// DateLayout is the calendar-day format used for every date column.
const DateLayout = "2006-01-02"
