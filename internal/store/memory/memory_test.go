package memory

import (
	"context"
	"errors"
	"testing"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
)

func TestClientCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

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
	if got.Name != "Alice" || got.IntID != 0 {
		t.Fatalf("unexpected client: %+v", got)
	}
	if err := s.DeleteClient(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetClient(ctx, "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteClient(ctx, "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListProductsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, p := range []model.Product{
		{ID: "apple", Name: "Apple", Category: "Fruit", Price: 1.2},
		{ID: "banana", Name: "Banana", Category: "Fruit", Price: 0.8},
		{ID: "orange", Name: "Orange", Category: "Fruit", Price: 1.0},
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
	if len(fruit) != 3 {
		t.Fatalf("expected 3 fruit, got %d", len(fruit))
	}
	for i, want := range []string{"Apple", "Banana", "Orange"} {
		if fruit[i].Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, fruit[i].Name)
		}
	}

	all, err := s.ListProducts(ctx, "")
	if err != nil || len(all) != 4 {
		t.Fatalf("list all: %v len=%d", err, len(all))
	}
}

func TestListOrdersByClient(t *testing.T) {
	ctx := context.Background()
	s := New()
	orders := []model.Order{
		{ID: "ord1", ClientID: "c1", Items: []model.OrderItem{{ProductID: "p1", Quantity: 1}}},
		{ID: "ord2", ClientID: "c2", Items: []model.OrderItem{{ProductID: "p1", Quantity: 2}}},
		{ID: "ord3", ClientID: "c1", Items: []model.OrderItem{{ProductID: "p1", Quantity: 3}}},
	}
	for _, o := range orders {
		if err := s.InsertOrder(ctx, o); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	mine, err := s.ListOrdersByClient(ctx, "c1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "ord1" || mine[1].ID != "ord3" {
		t.Fatalf("unexpected orders: %+v", mine)
	}
}

func TestNextSeq(t *testing.T) {
	ctx := context.Background()
	s := New()
	for want := uint64(1); want <= 3; want++ {
		got, err := s.NextSeq(ctx, store.SeqClients)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
	// Independent counters per name.
	got, err := s.NextSeq(ctx, store.SeqOrders)
	if err != nil || got != 1 {
		t.Fatalf("expected orders seq 1, got %d (%v)", got, err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := New()
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
	orders, _ := s.ListOrders(ctx)
	if len(orders) != 0 {
		t.Fatalf("orders survived reset: %d", len(orders))
	}
	if got, _ := s.NextSeq(ctx, store.SeqClients); got != 1 {
		t.Fatalf("counter survived reset: %d", got)
	}
}
