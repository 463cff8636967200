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

// registerClient creates a client record.
// @Summary Register client
// @Accept json
// @Produce json
// @Param client body model.RegisterClientRequest true "Client"
// @Success 201 {object} map[string]int64
// @Failure 400 {string} string "missing fields or duplicate id"
// @Router /clients [put]
func (h *Handler) registerClient(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "registerClient")
	defer span.End()

	var req model.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input, missing name or email", http.StatusBadRequest)
		return
	}
	if req.Name == nil || *req.Name == "" || req.Email == nil || *req.Email == "" {
		http.Error(w, "Invalid input, missing name or email", http.StatusBadRequest)
		return
	}
	if req.ID == nil || *req.ID == "" {
		http.Error(w, "Invalid input, missing id", http.StatusBadRequest)
		return
	}

	// Check for a duplicate before drawing a number so rejected requests do
	// not leave gaps. InsertClient still guards against a concurrent insert.
	if _, err := h.store.GetClient(ctx, *req.ID); err == nil {
		http.Error(w, "Client with this id already exists", http.StatusBadRequest)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.internalError(w, "get client", err)
		return
	}

	seq, err := h.store.NextSeq(ctx, store.SeqClients)
	if err != nil {
		h.internalError(w, "next client seq", err)
		return
	}
	c := model.Client{
		ID:    *req.ID,
		IntID: int64(seq) - 1, // external numbering starts at 0
		Name:  *req.Name,
		Email: *req.Email,
	}
	if err := h.store.InsertClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, "Client with this id already exists", http.StatusBadRequest)
			return
		}
		h.internalError(w, "insert client", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": c.IntID})
}

// getClient retrieves a client. The "id" in the response is the
// server-assigned integer, not the path identifier.
// @Summary Get client
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} model.ClientResponse
// @Failure 404 {string} string "client not found"
// @Router /clients/{id} [get]
func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "getClient")
	defer span.End()

	c, err := h.store.GetClient(ctx, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "get client", err)
		return
	}
	writeJSON(w, http.StatusOK, model.ClientResponse{ID: c.IntID, Name: c.Name, Email: c.Email})
}

// deleteClient removes a client. Orders already placed by the client are
// kept; referential integrity is only checked at order creation.
// @Summary Delete client
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {string} string "client not found"
// @Router /clients/{id} [delete]
func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "deleteClient")
	defer span.End()

	if err := h.store.DeleteClient(ctx, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listClientOrders lists the orders of one client, clientId stripped.
// @Summary List client orders
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} model.OrderResponse
// @Failure 404 {string} string "client not found"
// @Router /clients/{id}/orders [get]
func (h *Handler) listClientOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "listClientOrders")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, err := h.store.GetClient(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "get client", err)
		return
	}
	orders, err := h.store.ListOrdersByClient(ctx, id)
	if err != nil {
		h.internalError(w, "list client orders", err)
		return
	}
	out := make([]model.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, model.OrderResponse{ID: o.ID, Items: o.Items})
	}
	writeJSON(w, http.StatusOK, out)
}
