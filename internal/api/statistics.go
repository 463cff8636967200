package api

import (
	"net/http"

	"orderdesk/internal/otelx"
	"orderdesk/internal/stats"
)

// topClients ranks clients by number of orders placed, at most ten rows.
// @Summary Top clients by order count
// @Produce json
// @Success 200 {array} stats.ClientOrders
// @Router /statistics/top/clients [get]
func (h *Handler) topClients(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "topClients")
	defer span.End()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		h.internalError(w, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, stats.TopClients(orders, stats.TopLimit))
}

// topProducts ranks products by summed ordered quantity, at most ten rows.
// @Summary Top products by quantity sold
// @Produce json
// @Success 200 {array} stats.ProductQuantity
// @Router /statistics/top/products [get]
func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "topProducts")
	defer span.End()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		h.internalError(w, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, stats.TopProducts(orders, stats.TopLimit))
}

// totalOrders reports the number of orders placed.
// @Summary Total order count
// @Produce json
// @Success 200 {object} map[string]int
// @Router /statistics/orders/total [get]
func (h *Handler) totalOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "totalOrders")
	defer span.End()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		h.internalError(w, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"total": len(orders)})
}

// totalOrderValue reports the value of all orders at current product prices.
// An empty ledger is worth zero; the service this replaces faulted on it.
// @Summary Total order value
// @Produce json
// @Success 200 {object} map[string]float64
// @Router /statistics/orders/totalValue [get]
func (h *Handler) totalOrderValue(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "totalOrderValue")
	defer span.End()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		h.internalError(w, "list orders", err)
		return
	}
	products, err := h.store.ListProducts(ctx, "")
	if err != nil {
		h.internalError(w, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"totalValue": stats.TotalValue(orders, products)})
}
