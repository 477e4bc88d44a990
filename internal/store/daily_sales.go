package store

import (
	"context"
	"strings"

	"cobropos/m/domain"
)

const dailySaleColumns = `id, item_kind, item_id, item_name, sale_date, units_out, revenue_generated`

// SalesFilter narrows ListDailySales. Zero values disable a filter; Day wins over From/To.
type SalesFilter struct {
	Kind domain.ItemKind
	Day  string
	From string
	To   string
}

// ListDailySales returns accumulated sales rows, newest day first.
func (s *Store) ListDailySales(ctx context.Context, f SalesFilter) ([]domain.DailySale, error) {
	var (
		args    []any
		clauses []string
	)
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		clauses = append(clauses, "item_kind = ?")
	}
	if f.Day != "" {
		args = append(args, f.Day)
		clauses = append(clauses, "sale_date = ?")
	} else {
		if f.From != "" {
			args = append(args, f.From)
			clauses = append(clauses, "sale_date >= ?")
		}
		if f.To != "" {
			args = append(args, f.To)
			clauses = append(clauses, "sale_date <= ?")
		}
	}

	query := `SELECT ` + dailySaleColumns + ` FROM daily_sales`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY sale_date DESC, item_kind, item_id"

	sales := []domain.DailySale{}
	err := s.selectAll(ctx, &sales, query, args...)
	return sales, err
}
