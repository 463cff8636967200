// Package postgres implements the store on PostgreSQL, holding each record
// as a JSONB document so no relational schema is imposed on the entities.
// Insertion order comes from a BIGSERIAL column; sequence counters use a
// single-row upsert with RETURNING, which PostgreSQL executes atomically.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT UNIQUE NOT NULL,
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT UNIQUE NOT NULL,
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL,
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS counters (
	name TEXT PRIMARY KEY,
	n BIGINT NOT NULL
);`

// Store persists all collections in PostgreSQL.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle and ensures the tables exist.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *Store) insert(ctx context.Context, table, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO "+table+" (id, doc) VALUES ($1, $2)", id, doc)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return err
}

func (s *Store) get(ctx context.Context, table, id string, v any) error {
	var doc []byte
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM "+table+" WHERE id = $1", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, v)
}

func (s *Store) delete(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// InsertClient stores the client, rejecting duplicate external ids.
func (s *Store) InsertClient(ctx context.Context, c model.Client) error {
	return s.insert(ctx, "clients", c.ID, c)
}

// GetClient retrieves a client by external id.
func (s *Store) GetClient(ctx context.Context, id string) (model.Client, error) {
	var c model.Client
	err := s.get(ctx, "clients", id, &c)
	return c, err
}

// DeleteClient removes a client by external id.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.delete(ctx, "clients", id)
}

// InsertProduct stores the product, rejecting duplicate external ids.
func (s *Store) InsertProduct(ctx context.Context, p model.Product) error {
	return s.insert(ctx, "products", p.ID, p)
}

// GetProduct retrieves a product by external id.
func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := s.get(ctx, "products", id, &p)
	return p, err
}

// ListProducts returns products in insertion order, optionally filtered by
// category.
func (s *Store) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT doc FROM products WHERE $1::text = '' OR doc->>'category' = $1 ORDER BY seq", category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Product, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p model.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProduct removes a product by external id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.delete(ctx, "products", id)
}

// InsertOrder appends the order to the ledger.
func (s *Store) InsertOrder(ctx context.Context, o model.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO orders (id, doc) VALUES ($1, $2)", o.ID, doc)
	return err
}

func (s *Store) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var o model.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.listOrders(ctx, "SELECT doc FROM orders ORDER BY seq")
}

// ListOrdersByClient returns the orders placed by one client.
func (s *Store) ListOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return s.listOrders(ctx, "SELECT doc FROM orders WHERE doc->>'clientId' = $1 ORDER BY seq", clientID)
}

// NextSeq increments the named counter row and returns the new value.
func (s *Store) NextSeq(ctx context.Context, name string) (uint64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO counters (name, n) VALUES ($1, 1)
		 ON CONFLICT (name) DO UPDATE SET n = counters.n + 1
		 RETURNING n`, name).Scan(&n)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// Reset empties every table and rewinds the serial columns and counters.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "TRUNCATE clients, products, orders RESTART IDENTITY"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM counters")
	return err
}
