package bolt_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
	boltstore "orderdesk/internal/store/bolt"
)

func newTestStore(t *testing.T) *boltstore.Store {
	t.Helper()
	s, err := boltstore.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestClientCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := model.Client{ID: "c1", IntID: 0, Name: "Alice", Email: "alice@test.com"}
	if err := s.InsertClient(ctx, c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertClient(ctx, c); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	got, err := s.GetClient(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "alice@test.com" {
		t.Fatalf("unexpected client: %+v", got)
	}
	if err := s.DeleteClient(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetClient(ctx, "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductOrderingAndFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, p := range []model.Product{
		{ID: "apple", Name: "Apple", Category: "Fruit", Price: 1.2},
		{ID: "banana", Name: "Banana", Category: "Fruit", Price: 0.8},
		{ID: "tomato", Name: "Tomato", Category: "Berry", Price: 2.0},
	} {
		if err := s.InsertProduct(ctx, p); err != nil {
			t.Fatalf("insert %s: %v", p.ID, err)
		}
	}

	fruit, err := s.ListProducts(ctx, "Fruit")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fruit) != 2 || fruit[0].ID != "apple" || fruit[1].ID != "banana" {
		t.Fatalf("unexpected fruit listing: %+v", fruit)
	}

	// Order must hold across a delete and re-insert: the re-inserted record
	// goes to the end, not back to its old position.
	if err := s.DeleteProduct(ctx, "apple"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.InsertProduct(ctx, model.Product{ID: "apple", Name: "Apple", Category: "Fruit", Price: 1.2}); err != nil {
		t.Fatalf("reinsert: %v", err)
	}
	fruit, _ = s.ListProducts(ctx, "Fruit")
	if len(fruit) != 2 || fruit[0].ID != "banana" || fruit[1].ID != "apple" {
		t.Fatalf("unexpected order after reinsert: %+v", fruit)
	}
}

func TestOrdersByClient(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, o := range []model.Order{
		{ID: "ord1", ClientID: "c1", Items: []model.OrderItem{{ProductID: "p1", Quantity: 1}}},
		{ID: "ord2", ClientID: "c2", Items: []model.OrderItem{{ProductID: "p1", Quantity: 2}}},
		{ID: "ord3", ClientID: "c1", Items: []model.OrderItem{{ProductID: "p2", Quantity: 3}}},
	} {
		if err := s.InsertOrder(ctx, o); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	all, err := s.ListOrders(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v len=%d", err, len(all))
	}
	mine, err := s.ListOrdersByClient(ctx, "c1")
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "ord1" || mine[1].ID != "ord3" {
		t.Fatalf("unexpected orders: %+v", mine)
	}
}

func TestNextSeqSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seq.db")

	s, err := boltstore.New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for want := uint64(1); want <= 2; want++ {
		got, err := s.NextSeq(ctx, store.SeqOrders)
		if err != nil || got != want {
			t.Fatalf("expected %d, got %d (%v)", want, got, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = boltstore.New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.NextSeq(ctx, store.SeqOrders)
	if err != nil || got != 3 {
		t.Fatalf("expected 3 after reopen, got %d (%v)", got, err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.InsertClient(ctx, model.Client{ID: "c1"})
	s.InsertProduct(ctx, model.Product{ID: "p1"})
	s.InsertOrder(ctx, model.Order{ID: "ord1", ClientID: "c1"})
	s.NextSeq(ctx, store.SeqClients)

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := s.GetClient(ctx, "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("client survived reset: %v", err)
	}
	products, _ := s.ListProducts(ctx, "")
	if len(products) != 0 {
		t.Fatalf("products survived reset: %d", len(products))
	}
	if got, _ := s.NextSeq(ctx, store.SeqClients); got != 1 {
		t.Fatalf("counter survived reset: %d", got)
	}
}
