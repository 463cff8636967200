// Package store defines the persistence contract shared by all backends.
package store

import (
	"context"
	"errors"

	"orderdesk/internal/model"
)

// Sequence names used with NextSeq.
const (
	SeqClients = "clients"
	SeqOrders  = "orders"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a record with the same external id already exists.
	ErrDuplicate = errors.New("duplicate id")
)

// Store persists the three collections and the sequence counters. List
// operations return records in insertion order; that order is observable
// through the API (category filtering, statistics tie-breaking) so every
// backend must preserve it.
type Store interface {
	InsertClient(ctx context.Context, c model.Client) error
	GetClient(ctx context.Context, id string) (model.Client, error)
	DeleteClient(ctx context.Context, id string) error

	InsertProduct(ctx context.Context, p model.Product) error
	GetProduct(ctx context.Context, id string) (model.Product, error)
	// ListProducts returns all products, or only those in the given category
	// when category is non-empty.
	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	InsertOrder(ctx context.Context, o model.Order) error
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error)

	// NextSeq atomically increments the named counter and returns the new
	// value. The first call for a name returns 1. Counters are owned by the
	// storage layer so that identifier assignment survives restarts and
	// concurrent registrations never observe the same value.
	NextSeq(ctx context.Context, name string) (uint64, error)

	// Reset deletes every record in every collection and zeroes all counters.
	Reset(ctx context.Context) error

	Close() error
}
