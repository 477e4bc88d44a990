// Package sales accumulates every sale of an item into one DailySale row per calendar day.
package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"cobropos/m/domain"
	"cobropos/m/internal/database"
	"cobropos/m/internal/store"
)

// Entry is one sale to fold into the daily aggregate.
type Entry struct {
	Kind     domain.ItemKind
	ItemID   int64
	ItemName string
	Units    int64
	Revenue  decimal.Decimal
	Day      string
}

func (e Entry) key() string {
	return fmt.Sprintf("%s:%d:%s", e.Kind, e.ItemID, e.Day)
}

const (
	insertDailySale = `INSERT INTO daily_sales (item_kind, item_id, item_name, sale_date, units_out, revenue_generated)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (item_kind, item_id, sale_date) DO NOTHING
RETURNING ` + dailySaleColumns

	selectDailySale = `SELECT ` + dailySaleColumns + ` FROM daily_sales WHERE item_kind = ? AND item_id = ? AND sale_date = ?`

	dailySaleColumns = `id, item_kind, item_id, item_name, sale_date, units_out, revenue_generated`
)

// Record adds e to the (kind, item, day) row inside tx, creating the row on first sale.
// The name stored on creation is kept for the rest of the day. Totals are summed in
// decimal arithmetic, never by the database.
func Record(ctx context.Context, tx *store.Store, e Entry) (domain.DailySale, bool, error) {
	if !e.Kind.Valid() {
		return domain.DailySale{}, false, fmt.Errorf("unknown item kind %q", e.Kind)
	}
	q := tx.Ext()

	var sale domain.DailySale
	err := sqlx.GetContext(ctx, q, &sale, tx.Rebind(insertDailySale),
		string(e.Kind), e.ItemID, e.ItemName, e.Day, e.Units, e.Revenue)
	if err == nil {
		return sale, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.DailySale{}, false, fmt.Errorf("insert daily sale: %w", err)
	}

	// The row exists. SQLite serializes writers on its single connection; PostgreSQL needs a row lock.
	query := selectDailySale
	if q.DriverName() == database.DriverPostgres {
		query += " FOR UPDATE"
	}
	if err := sqlx.GetContext(ctx, q, &sale, tx.Rebind(query), string(e.Kind), e.ItemID, e.Day); err != nil {
		return domain.DailySale{}, false, fmt.Errorf("load daily sale: %w", err)
	}

	sale.UnitsOut += e.Units
	sale.RevenueGenerated = sale.RevenueGenerated.Add(e.Revenue)
	_, err = q.ExecContext(ctx, tx.Rebind(`UPDATE daily_sales SET units_out = ?, revenue_generated = ? WHERE id = ?`),
		sale.UnitsOut, sale.RevenueGenerated, sale.ID)
	if err != nil {
		return domain.DailySale{}, false, fmt.Errorf("update daily sale: %w", err)
	}
	return sale, false, nil
}
