package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"orderdesk/internal/model"
	"orderdesk/internal/otelx"
	"orderdesk/internal/store"
)

// placeOrder creates an order after checking that the client and every
// referenced product exist and every quantity is at least one. The client is
// checked first, then the items in sequence; the first failing item decides
// the response.
//
// Success answers 200, not the 201 of the other creation endpoints. That
// asymmetry is part of the wire contract this service inherited and callers
// depend on it.
// @Summary Place order
// @Accept json
// @Produce json
// @Param order body model.PlaceOrderRequest true "Order"
// @Success 200 {object} map[string]string
// @Failure 400 {string} string "missing fields or invalid quantity"
// @Failure 404 {string} string "unknown client or product"
// @Router /orders [put]
func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "placeOrder")
	defer span.End()

	var req model.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input, missing clientId or items", http.StatusBadRequest)
		return
	}
	if req.ClientID == nil || *req.ClientID == "" || req.Items == nil {
		http.Error(w, "Invalid input, missing clientId or items", http.StatusBadRequest)
		return
	}
	items := *req.Items
	if len(items) == 0 {
		http.Error(w, "Order must contain at least one item", http.StatusBadRequest)
		return
	}

	if _, err := h.store.GetClient(ctx, *req.ClientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "get client", err)
		return
	}
	for _, item := range items {
		if _, err := h.store.GetProduct(ctx, item.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "Product not found", http.StatusNotFound)
				return
			}
			h.internalError(w, "get product", err)
			return
		}
		if item.Quantity < 1 {
			http.Error(w, "Quantity must be at least 1", http.StatusBadRequest)
			return
		}
	}

	seq, err := h.store.NextSeq(ctx, store.SeqOrders)
	if err != nil {
		h.internalError(w, "next order seq", err)
		return
	}
	o := model.Order{
		ID:       "ord" + strconv.FormatUint(seq, 10),
		ClientID: *req.ClientID,
		Items:    items,
	}
	if err := h.store.InsertOrder(ctx, o); err != nil {
		h.internalError(w, "insert order", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": o.ID})
}
