package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"orderdesk/internal/model"
	"orderdesk/internal/otelx"
	"orderdesk/internal/store"
)

// registerProduct creates a product record. Every field is validated for
// presence; the service this replaces crashed on a missing category or
// description instead of rejecting the request.
// @Summary Register product
// @Accept json
// @Produce json
// @Param product body model.RegisterProductRequest true "Product"
// @Success 201 {object} map[string]string
// @Failure 400 {string} string "missing fields, negative price or duplicate id"
// @Router /products [put]
func (h *Handler) registerProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "registerProduct")
	defer span.End()

	var req model.RegisterProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input, missing id, name or price", http.StatusBadRequest)
		return
	}
	if req.ID == nil || *req.ID == "" || req.Name == nil || *req.Name == "" || req.Price == nil {
		http.Error(w, "Invalid input, missing id, name or price", http.StatusBadRequest)
		return
	}
	if req.Category == nil || req.Description == nil {
		http.Error(w, "Invalid input, missing category or description", http.StatusBadRequest)
		return
	}
	if *req.Price < 0 {
		http.Error(w, "Price must not be negative", http.StatusBadRequest)
		return
	}

	p := model.Product{
		ID:          *req.ID,
		Name:        *req.Name,
		Category:    *req.Category,
		Description: *req.Description,
		Price:       *req.Price,
	}
	if err := h.store.InsertProduct(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, "Product with this id already exists", http.StatusBadRequest)
			return
		}
		h.internalError(w, "insert product", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": p.ID})
}

// listProducts lists products, optionally filtered by category. The filter
// is read from the category query parameter or, failing that, from an
// optional JSON body {"category": ...}.
// @Summary List products
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "listProducts")
	defer span.End()

	category := r.URL.Query().Get("category")
	if category == "" && r.Body != nil {
		var body struct {
			Category string `json:"category"`
		}
		// A missing or empty body simply means no filter.
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			category = body.Category
		}
	}

	products, err := h.store.ListProducts(ctx, category)
	if err != nil {
		h.internalError(w, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// getProduct retrieves a product by external id.
// @Summary Get product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {string} string "product not found"
// @Router /products/{id} [get]
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "getProduct")
	defer span.End()

	p, err := h.store.GetProduct(ctx, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "get product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// deleteProduct removes a product. Orders referencing it are kept and simply
// stop contributing to the total order value.
// @Summary Delete product
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {string} string "product not found"
// @Router /products/{id} [delete]
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "deleteProduct")
	defer span.End()

	if err := h.store.DeleteProduct(ctx, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
