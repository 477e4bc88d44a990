package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cobropos/m/domain"
)

// LoadProducts ingests the CSV into the products table, ignoring rows whose PLU already exists.
// Malformed rows are skipped; a database error rolls back the whole load.
// Columns: plu,name,stock_qty,cost_price,sale_price,supplier,last_restock_date,image_path.
func LoadProducts(db *sqlx.DB, csvPath string, logger *logrus.Logger) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open product catalog %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read product header: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin product seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(db.Rebind(`INSERT INTO products (plu, name, stock_qty, cost_price, sale_price, supplier, last_restock_date, image_path)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT (plu) DO NOTHING`))
	if err != nil {
		return 0, fmt.Errorf("prepare product insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.WithField("line", line).Warn("unable to read product row: " + err.Error())
			continue
		}
		p, err := parseProduct(record)
		if err != nil {
			logger.WithField("line", line).Warn("skipping product row: " + err.Error())
			continue
		}

		res, err := stmt.Exec(p.PLU, p.Name, p.StockQty, p.CostPrice, p.SalePrice, p.Supplier, p.LastRestockDate, p.ImagePath)
		if err != nil {
			// A failed statement aborts the whole transaction on PostgreSQL.
			return 0, fmt.Errorf("insert product plu %d (line %d): %w", p.PLU, line, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product seed: %w", err)
	}
	logger.WithField("rows", rows).Info("seeded product catalog")
	return rows, nil
}

func parseProduct(record []string) (domain.Product, error) {
	if len(record) < 7 {
		return domain.Product{}, fmt.Errorf("expected at least 7 columns, got %d", len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	var (
		p   domain.Product
		err error
	)
	if p.PLU, err = strconv.ParseInt(record[0], 10, 64); err != nil || p.PLU < 0 {
		return p, fmt.Errorf("invalid plu %q", record[0])
	}
	if p.Name = record[1]; p.Name == "" {
		return p, fmt.Errorf("missing name")
	}
	if p.StockQty, err = strconv.ParseInt(record[2], 10, 64); err != nil {
		return p, fmt.Errorf("invalid stock_qty %q", record[2])
	}
	if p.CostPrice, err = decimal.NewFromString(record[3]); err != nil {
		return p, fmt.Errorf("invalid cost_price %q", record[3])
	}
	if p.SalePrice, err = decimal.NewFromString(record[4]); err != nil {
		return p, fmt.Errorf("invalid sale_price %q", record[4])
	}
	p.Supplier = record[5]
	if _, err := time.Parse(domain.DateLayout, record[6]); err != nil {
		return p, fmt.Errorf("invalid last_restock_date %q", record[6])
	}
	p.LastRestockDate = record[6]
	if len(record) > 7 {
		p.ImagePath = record[7]
	}
	return p, nil
}

// Reset empties every table, sales first.
func Reset(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"daily_sales", "orders", "services", "materials", "products"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}
