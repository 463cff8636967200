// Package mongo implements the store on MongoDB, the engine the original
// deployment of this service ran against.
//
// Every record carries an internal seq field assigned from the counters
// collection so that listings come back in insertion order regardless of how
// the server returns natural order. Sequence counters are single documents
// updated with $inc through FindOneAndUpdate, which MongoDB applies
// atomically.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
)

const (
	collClients  = "clients"
	collProducts = "products"
	collOrders   = "orders"
	collCounters = "counters"

	seqClientsOrder  = "_clients_insert"
	seqProductsOrder = "_products_insert"
	seqOrdersOrder   = "_orders_insert"
)

type clientDoc struct {
	Seq          uint64 `bson:"seq"`
	model.Client `bson:",inline"`
}

type productDoc struct {
	Seq           uint64 `bson:"seq"`
	model.Product `bson:",inline"`
}

type orderDoc struct {
	Seq         uint64 `bson:"seq"`
	model.Order `bson:",inline"`
}

// Store persists all collections in one MongoDB database.
type Store struct {
	cli *mongo.Client
	db  *mongo.Database
}

// New connects to the given MongoDB URI and prepares unique indexes on the
// external ids of clients and products.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		cli.Disconnect(ctx)
		return nil, err
	}
	s := &Store{cli: cli, db: cli.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		cli.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []string{collClients, collProducts} {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

// Close disconnects from the server.
func (s *Store) Close() error {
	return s.cli.Disconnect(context.Background())
}

func (s *Store) insert(ctx context.Context, coll, orderSeq string, wrap func(uint64) any) error {
	seq, err := s.NextSeq(ctx, orderSeq)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(coll).InsertOne(ctx, wrap(seq))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

// InsertClient stores the client, rejecting duplicate external ids.
func (s *Store) InsertClient(ctx context.Context, c model.Client) error {
	return s.insert(ctx, collClients, seqClientsOrder, func(seq uint64) any {
		return clientDoc{Seq: seq, Client: c}
	})
}

// GetClient retrieves a client by external id.
func (s *Store) GetClient(ctx context.Context, id string) (model.Client, error) {
	var doc clientDoc
	err := s.db.Collection(collClients).FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Client{}, store.ErrNotFound
	}
	return doc.Client, err
}

// DeleteClient removes a client by external id.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.deleteByID(ctx, collClients, id)
}

// InsertProduct stores the product, rejecting duplicate external ids.
func (s *Store) InsertProduct(ctx context.Context, p model.Product) error {
	return s.insert(ctx, collProducts, seqProductsOrder, func(seq uint64) any {
		return productDoc{Seq: seq, Product: p}
	})
}

// GetProduct retrieves a product by external id.
func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var doc productDoc
	err := s.db.Collection(collProducts).FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, store.ErrNotFound
	}
	return doc.Product, err
}

// ListProducts returns products in insertion order, optionally filtered by
// category.
func (s *Store) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	filter := bson.D{}
	if category != "" {
		filter = bson.D{{Key: "category", Value: category}}
	}
	cur, err := s.db.Collection(collProducts).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Product)
	}
	return out, nil
}

// DeleteProduct removes a product by external id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteByID(ctx, collProducts, id)
}

func (s *Store) deleteByID(ctx context.Context, coll, id string) error {
	res, err := s.db.Collection(coll).DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// InsertOrder appends the order to the ledger.
func (s *Store) InsertOrder(ctx context.Context, o model.Order) error {
	return s.insert(ctx, collOrders, seqOrdersOrder, func(seq uint64) any {
		return orderDoc{Seq: seq, Order: o}
	})
}

func (s *Store) listOrders(ctx context.Context, filter bson.D) ([]model.Order, error) {
	cur, err := s.db.Collection(collOrders).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Order)
	}
	return out, nil
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.listOrders(ctx, bson.D{})
}

// ListOrdersByClient returns the orders placed by one client.
func (s *Store) ListOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return s.listOrders(ctx, bson.D{{Key: "clientId", Value: clientID}})
}

// NextSeq increments the named counter document with $inc and returns the
// new value.
func (s *Store) NextSeq(ctx context.Context, name string) (uint64, error) {
	var doc struct {
		N int64 `bson:"n"`
	}
	err := s.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "n", Value: 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return uint64(doc.N), nil
}

// Reset empties every collection, counters included. Indexes survive a
// DeleteMany, so nothing needs recreating.
func (s *Store) Reset(ctx context.Context) error {
	for _, coll := range []string{collClients, collProducts, collOrders, collCounters} {
		if _, err := s.db.Collection(coll).DeleteMany(ctx, bson.D{}); err != nil {
			return err
		}
	}
	return nil
}
