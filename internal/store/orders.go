package store

import (
	"context"

	"cobropos/m/domain"
)

const orderColumns = `id, finished, order_date, description, customer_name, phone_number, price`

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := s.selectAll(ctx, &orders, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	return orders, err
}

// ListOrdersByFinished returns finished or pending orders, newest first.
func (s *Store) ListOrdersByFinished(ctx context.Context, finished bool) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := s.selectAll(ctx, &orders, `SELECT `+orderColumns+` FROM orders WHERE finished = ? ORDER BY order_date DESC, id DESC`, finished)
	return orders, err
}

func (s *Store) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := s.get(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return o, err
}

// SearchOrders matches the description case-insensitively.
func (s *Store) SearchOrders(ctx context.Context, substring string) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := s.selectAll(ctx, &orders, `SELECT `+orderColumns+` FROM orders WHERE LOWER(description) LIKE ? ESCAPE '\' ORDER BY order_date DESC, id DESC`, likePattern(substring))
	return orders, err
}

func (s *Store) CreateOrder(ctx context.Context, in domain.OrderInput) (domain.Order, error) {
	id, err := s.insert(ctx, `INSERT INTO orders (finished, order_date, description, customer_name, phone_number, price) VALUES (?, ?, ?, ?, ?, ?)`,
		in.Finished, *in.Date, *in.Description, *in.CustomerName, in.PhoneNumber, *in.Price)
	if err != nil {
		return domain.Order{}, err
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Order, error) {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return domain.Order{}, err
	}
	var sets setList
	if patch.Finished != nil {
		sets.add("finished", *patch.Finished)
	}
	if patch.Date != nil {
		sets.add("order_date", *patch.Date)
	}
	if patch.Description != nil {
		sets.add("description", *patch.Description)
	}
	if patch.CustomerName != nil {
		sets.add("customer_name", *patch.CustomerName)
	}
	if patch.PhoneNumber != nil {
		sets.add("phone_number", *patch.PhoneNumber)
	}
	if patch.Price != nil {
		sets.add("price", *patch.Price)
	}
	if err := s.update(ctx, "orders", id, sets); err != nil {
		return domain.Order{}, err
	}
	return s.GetOrder(ctx, id)
}

// SetOrderFinished flips the two-state finished flag.
func (s *Store) SetOrderFinished(ctx context.Context, id int64, finished bool) (domain.Order, error) {
	return s.UpdateOrder(ctx, id, domain.OrderPatch{Finished: &finished})
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "orders", id)
}
