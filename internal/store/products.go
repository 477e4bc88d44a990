package store

import (
	"context"

	"cobropos/m/domain"
)

const productColumns = `id, plu, name, stock_qty, cost_price, sale_price, supplier, last_restock_date, image_path`

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := s.selectAll(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`)
	return products, err
}

func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := s.get(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return p, err
}

func (s *Store) ProductByPLU(ctx context.Context, plu int64) (domain.Product, error) {
	var p domain.Product
	err := s.get(ctx, &p, `SELECT `+productColumns+` FROM products WHERE plu = ?`, plu)
	return p, err
}

// SearchProducts matches name case-insensitively against substring.
func (s *Store) SearchProducts(ctx context.Context, substring string) ([]domain.Product, error) {
	products := []domain.Product{}
	err := s.selectAll(ctx, &products, `SELECT `+productColumns+` FROM products WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name`, likePattern(substring))
	return products, err
}

func (s *Store) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := s.ensureUnique(ctx, "products", "plu", "plu", *in.PLU, 0); err != nil {
		return domain.Product{}, err
	}
	id, err := s.insert(ctx, `INSERT INTO products (plu, name, stock_qty, cost_price, sale_price, supplier, last_restock_date, image_path) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		*in.PLU, *in.Name, *in.StockQty, *in.CostPrice, *in.SalePrice, *in.Supplier, *in.LastRestockDate, in.ImagePath)
	if err != nil {
		return domain.Product{}, mapWriteError(err, "plu")
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return domain.Product{}, err
	}
	var sets setList
	if patch.PLU != nil {
		if err := s.ensureUnique(ctx, "products", "plu", "plu", *patch.PLU, id); err != nil {
			return domain.Product{}, err
		}
		sets.add("plu", *patch.PLU)
	}
	if patch.Name != nil {
		sets.add("name", *patch.Name)
	}
	if patch.StockQty != nil {
		sets.add("stock_qty", *patch.StockQty)
	}
	if patch.CostPrice != nil {
		sets.add("cost_price", *patch.CostPrice)
	}
	if patch.SalePrice != nil {
		sets.add("sale_price", *patch.SalePrice)
	}
	if patch.Supplier != nil {
		sets.add("supplier", *patch.Supplier)
	}
	if patch.LastRestockDate != nil {
		sets.add("last_restock_date", *patch.LastRestockDate)
	}
	if patch.ImagePath != nil {
		sets.add("image_path", *patch.ImagePath)
	}
	if err := s.update(ctx, "products", id, sets); err != nil {
		return domain.Product{}, mapWriteError(err, "plu")
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "products", id)
}

// AdjustProductStock adds delta (negative on sale) to the product's stock without bounds checks.
func (s *Store) AdjustProductStock(ctx context.Context, id, delta int64) error {
	res, err := s.q.ExecContext(ctx, s.db.Rebind(`UPDATE products SET stock_qty = stock_qty + ? WHERE id = ?`), delta, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
