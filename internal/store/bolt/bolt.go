// Package bolt implements the store on an embedded BoltDB file. It is the
// default backend: a single data file, no external database process.
//
// Records are keyed by the bucket's own insertion sequence (big-endian
// uint64) so iteration yields insertion order; a side bucket per collection
// maps the external id to that key for lookups. Counters live in their own
// bucket and are incremented inside an update transaction, which Bolt
// serializes, so NextSeq is atomic across concurrent requests.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
)

var (
	bucketClients     = []byte("clients")
	bucketClientsIdx  = []byte("clients_idx")
	bucketProducts    = []byte("products")
	bucketProductsIdx = []byte("products_idx")
	bucketOrders      = []byte("orders")
	bucketSeqs        = []byte("seqs")
)

var allBuckets = [][]byte{
	bucketClients, bucketClientsIdx,
	bucketProducts, bucketProductsIdx,
	bucketOrders, bucketSeqs,
}

// Store persists all collections in one BoltDB file.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) the database file at path and ensures all buckets
// exist.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func (s *Store) insert(data, idx []byte, id string, v any) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		ib := tx.Bucket(idx)
		if ib.Get([]byte(id)) != nil {
			return store.ErrDuplicate
		}
		db := tx.Bucket(data)
		seq, err := db.NextSequence()
		if err != nil {
			return err
		}
		doc, err := json.Marshal(v)
		if err != nil {
			return err
		}
		key := itob(seq)
		if err := db.Put(key, doc); err != nil {
			return err
		}
		return ib.Put([]byte(id), key)
	})
}

func (s *Store) get(data, idx []byte, id string, v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket(idx).Get([]byte(id))
		if key == nil {
			return store.ErrNotFound
		}
		doc := tx.Bucket(data).Get(key)
		if doc == nil {
			return store.ErrNotFound
		}
		return json.Unmarshal(doc, v)
	})
}

func (s *Store) delete(data, idx []byte, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		ib := tx.Bucket(idx)
		key := ib.Get([]byte(id))
		if key == nil {
			return store.ErrNotFound
		}
		if err := tx.Bucket(data).Delete(key); err != nil {
			return err
		}
		return ib.Delete([]byte(id))
	})
}

// InsertClient stores the client, rejecting duplicate external ids.
func (s *Store) InsertClient(ctx context.Context, c model.Client) error {
	return s.insert(bucketClients, bucketClientsIdx, c.ID, c)
}

// GetClient retrieves a client by external id.
func (s *Store) GetClient(ctx context.Context, id string) (model.Client, error) {
	var c model.Client
	err := s.get(bucketClients, bucketClientsIdx, id, &c)
	return c, err
}

// DeleteClient removes a client by external id.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.delete(bucketClients, bucketClientsIdx, id)
}

// InsertProduct stores the product, rejecting duplicate external ids.
func (s *Store) InsertProduct(ctx context.Context, p model.Product) error {
	return s.insert(bucketProducts, bucketProductsIdx, p.ID, p)
}

// GetProduct retrieves a product by external id.
func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := s.get(bucketProducts, bucketProductsIdx, id, &p)
	return p, err
}

// ListProducts returns products in insertion order, optionally filtered by
// category.
func (s *Store) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	out := make([]model.Product, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProducts).ForEach(func(k, v []byte) error {
			var p model.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if category == "" || p.Category == category {
				out = append(out, p)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProduct removes a product by external id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.delete(bucketProducts, bucketProductsIdx, id)
}

// InsertOrder appends the order to the ledger.
func (s *Store) InsertOrder(ctx context.Context, o model.Order) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOrders)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		doc, err := json.Marshal(o)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), doc)
	})
}

func (s *Store) listOrders(filterClient string) ([]model.Order, error) {
	var out []model.Order
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketOrders).ForEach(func(k, v []byte) error {
			var o model.Order
			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}
			if filterClient == "" || o.ClientID == filterClient {
				out = append(out, o)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.listOrders("")
}

// ListOrdersByClient returns the orders placed by one client.
func (s *Store) ListOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return s.listOrders(clientID)
}

// NextSeq increments the named counter and returns the new value. Update
// transactions are serialized by Bolt, so two concurrent calls can never
// observe the same value.
func (s *Store) NextSeq(ctx context.Context, name string) (uint64, error) {
	var next uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeqs)
		if cur := b.Get([]byte(name)); cur != nil {
			next = binary.BigEndian.Uint64(cur)
		}
		next++
		return b.Put([]byte(name), itob(next))
	})
	return next, err
}

// Reset drops and recreates every bucket, which also rewinds the insertion
// sequences and all counters.
func (s *Store) Reset(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}
