// Package store is the persistence gateway for products, materials, services and orders.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"cobropos/m/internal/database"
	"cobropos/m/internal/validation"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Store runs queries against the database or, inside InTx, against one transaction.
type Store struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

// InTx runs fn inside a single transaction. Calls made on an already
// transactional Store reuse the open transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// Ext exposes the current query target for collaborators that own their own tables.
func (s *Store) Ext() sqlx.ExtContext {
	return s.q
}

// Rebind converts '?' placeholders to the driver's bindvar style.
func (s *Store) Rebind(query string) string {
	return s.db.Rebind(query)
}

func (s *Store) get(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, s.q, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Store) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, s.q, dest, s.db.Rebind(query), args...)
}

func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := s.q.QueryRowxContext(ctx, s.db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := s.q.ExecContext(ctx, s.db.Rebind("DELETE FROM "+table+" WHERE id = ?"), id)
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

// ensureUnique fails with a validation error when column already holds value on a row other than exceptID.
func (s *Store) ensureUnique(ctx context.Context, table, column, field string, value any, exceptID int64) error {
	var count int64
	query := "SELECT COUNT(*) FROM " + table + " WHERE " + column + " = ?"
	args := []any{value}
	if exceptID > 0 {
		query += " AND id <> ?"
		args = append(args, exceptID)
	}
	if err := sqlx.GetContext(ctx, s.q, &count, s.db.Rebind(query), args...); err != nil {
		return err
	}
	if count > 0 {
		return validation.Duplicate(field)
	}
	return nil
}

// mapWriteError turns a unique index violation into the validation error for field.
func mapWriteError(err error, field string) error {
	if database.IsUniqueViolation(err) {
		return validation.Duplicate(field)
	}
	return err
}

// likeEscaper escapes LIKE wildcards; queries pair it with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a contains pattern for LOWER(column) LIKE ? ESCAPE '\'.
// SQLite's LOWER folds ASCII only, so accented capitals such as Ñ still match case-sensitively there.
func likePattern(substring string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(substring))) + "%"
}

// setList collects "column = ?" assignments for partial updates.
type setList struct {
	clauses []string
	args    []any
}

func (l *setList) add(column string, value any) {
	l.clauses = append(l.clauses, column+" = ?")
	l.args = append(l.args, value)
}

func (l *setList) empty() bool {
	return len(l.clauses) == 0
}

func (s *Store) update(ctx context.Context, table string, id int64, sets setList) error {
	if sets.empty() {
		return nil
	}
	query := "UPDATE " + table + " SET " + strings.Join(sets.clauses, ", ") + " WHERE id = ?"
	res, err := s.q.ExecContext(ctx, s.db.Rebind(query), append(sets.args, id)...)
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
