package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/model"
)

func registerProduct(t *testing.T, h http.Handler, id, name, category string, price float64) {
	t.Helper()
	rec := do(t, h, http.MethodPut, "/products", map[string]any{
		"id": id, "name": name, "category": category, "description": name + " from the market", "price": price,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	decode(t, rec, &resp)
	require.Equal(t, id, resp.ID)
}

func TestRegisterProductValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing price", map[string]any{"id": "p1", "name": "Bogus", "category": "Bogus", "description": "x"}},
		{"missing id", map[string]any{"name": "Bogus", "category": "Bogus", "description": "x", "price": 1.0}},
		{"missing name", map[string]any{"id": "p1", "category": "Bogus", "description": "x", "price": 1.0}},
		{"missing category", map[string]any{"id": "p1", "name": "Bogus", "description": "x", "price": 1.0}},
		{"missing description", map[string]any{"id": "p1", "name": "Bogus", "category": "Bogus", "price": 1.0}},
		{"negative price", map[string]any{"id": "p1", "name": "Bogus", "category": "Bogus", "description": "x", "price": -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// Zero is a valid price.
	rec := do(t, h, http.MethodPut, "/products", map[string]any{
		"id": "free", "name": "Sample", "category": "Promo", "description": "x", "price": 0.0,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterProductDuplicate(t *testing.T) {
	h := newTestRouter(t)
	registerProduct(t, h, "p1", "Apple", "Fruit", 1.2)

	rec := do(t, h, http.MethodPut, "/products", map[string]any{
		"id": "p1", "name": "Apple", "category": "Fruit", "description": "x", "price": 1.2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestProductLifecycle(t *testing.T) {
	h := newTestRouter(t)
	registerProduct(t, h, "apple", "Apple", "Fruit", 1.2)

	rec := do(t, h, http.MethodGet, "/products/apple", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Product
	decode(t, rec, &got)
	assert.Equal(t, "Apple", got.Name)
	assert.Equal(t, "Fruit", got.Category)
	assert.InDelta(t, 1.2, got.Price, 1e-9)

	rec = do(t, h, http.MethodDelete, "/products/apple", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/apple", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/products/apple", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsByCategory(t *testing.T) {
	h := newTestRouter(t)
	registerProduct(t, h, "apple", "Apple", "Fruit", 1.2)
	registerProduct(t, h, "banana", "Banana", "Fruit", 0.8)
	registerProduct(t, h, "orange", "Orange", "Fruit", 1.0)
	registerProduct(t, h, "tomato", "Tomato", "Berry", 2.0)

	rec := do(t, h, http.MethodGet, "/products?category=Fruit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fruit []model.Product
	decode(t, rec, &fruit)
	require.Len(t, fruit, 3)
	assert.Equal(t, "Apple", fruit[0].Name)
	assert.Equal(t, "Banana", fruit[1].Name)
	assert.Equal(t, "Orange", fruit[2].Name)

	rec = do(t, h, http.MethodGet, "/products?category=Berry", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var berry []model.Product
	decode(t, rec, &berry)
	require.Len(t, berry, 1)
	assert.Equal(t, "Tomato", berry[0].Name)

	// The filter may also arrive as a JSON body.
	rec = do(t, h, http.MethodGet, "/products", map[string]string{"category": "Berry"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &berry)
	require.Len(t, berry, 1)

	// No filter lists everything; unknown category is an empty list, not 404.
	rec = do(t, h, http.MethodGet, "/products", nil)
	var all []model.Product
	decode(t, rec, &all)
	assert.Len(t, all, 4)

	rec = do(t, h, http.MethodGet, "/products?category=Metal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var none []model.Product
	decode(t, rec, &none)
	assert.Empty(t, none)
	assert.JSONEq(t, "[]", rec.Body.String())
}
