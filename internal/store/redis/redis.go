// Package redis implements the store on Redis.
//
// Each collection is a hash keyed by external id holding the JSON document,
// plus a list of ids that records insertion order (HGETALL alone does not
// preserve it). Orders are a plain list since they are never fetched or
// deleted individually. Sequence counters use INCR, which is atomic on the
// server.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
)

const (
	keyClients     = "orderdesk:clients"
	keyClientsIDs  = "orderdesk:clients:ids"
	keyProducts    = "orderdesk:products"
	keyProductsIDs = "orderdesk:products:ids"
	keyOrders      = "orderdesk:orders"
	keySeqPrefix   = "orderdesk:seq:"
)

// Store persists all collections in a Redis instance.
type Store struct {
	cli *redis.Client
}

// New wraps an existing Redis client.
func New(cli *redis.Client) *Store {
	return &Store{cli: cli}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.cli.Close()
}

func (s *Store) insert(ctx context.Context, hashKey, idsKey, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	set, err := s.cli.HSetNX(ctx, hashKey, id, doc).Result()
	if err != nil {
		return err
	}
	if !set {
		return store.ErrDuplicate
	}
	return s.cli.RPush(ctx, idsKey, id).Err()
}

func (s *Store) get(ctx context.Context, hashKey, id string, v any) error {
	doc, err := s.cli.HGet(ctx, hashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc), v)
}

func (s *Store) delete(ctx context.Context, hashKey, idsKey, id string) error {
	removed, err := s.cli.HDel(ctx, hashKey, id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return store.ErrNotFound
	}
	return s.cli.LRem(ctx, idsKey, 1, id).Err()
}

// InsertClient stores the client, rejecting duplicate external ids.
func (s *Store) InsertClient(ctx context.Context, c model.Client) error {
	return s.insert(ctx, keyClients, keyClientsIDs, c.ID, c)
}

// GetClient retrieves a client by external id.
func (s *Store) GetClient(ctx context.Context, id string) (model.Client, error) {
	var c model.Client
	err := s.get(ctx, keyClients, id, &c)
	return c, err
}

// DeleteClient removes a client by external id.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.delete(ctx, keyClients, keyClientsIDs, id)
}

// InsertProduct stores the product, rejecting duplicate external ids.
func (s *Store) InsertProduct(ctx context.Context, p model.Product) error {
	return s.insert(ctx, keyProducts, keyProductsIDs, p.ID, p)
}

// GetProduct retrieves a product by external id.
func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := s.get(ctx, keyProducts, id, &p)
	return p, err
}

// ListProducts returns products in insertion order, optionally filtered by
// category.
func (s *Store) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	ids, err := s.cli.LRange(ctx, keyProductsIDs, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		var p model.Product
		if err := s.get(ctx, keyProducts, id, &p); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// DeleteProduct removes a product by external id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.delete(ctx, keyProducts, keyProductsIDs, id)
}

// InsertOrder appends the order to the ledger.
func (s *Store) InsertOrder(ctx context.Context, o model.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return s.cli.RPush(ctx, keyOrders, doc).Err()
}

func (s *Store) listOrders(ctx context.Context, filterClient string) ([]model.Order, error) {
	docs, err := s.cli.LRange(ctx, keyOrders, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	var out []model.Order
	for _, doc := range docs {
		var o model.Order
		if err := json.Unmarshal([]byte(doc), &o); err != nil {
			return nil, err
		}
		if filterClient == "" || o.ClientID == filterClient {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.listOrders(ctx, "")
}

// ListOrdersByClient returns the orders placed by one client.
func (s *Store) ListOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return s.listOrders(ctx, clientID)
}

// NextSeq increments the named counter and returns the new value.
func (s *Store) NextSeq(ctx context.Context, name string) (uint64, error) {
	n, err := s.cli.Incr(ctx, keySeqPrefix+name).Result()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// Reset deletes every key the store owns, counters included.
func (s *Store) Reset(ctx context.Context) error {
	return s.cli.Del(ctx,
		keyClients, keyClientsIDs,
		keyProducts, keyProductsIDs,
		keyOrders,
		keySeqPrefix+store.SeqClients, keySeqPrefix+store.SeqOrders,
	).Err()
}
