package api

import (
	"net/http"

	"orderdesk/internal/otelx"
)

// cleanup erases every record in every collection and rewinds the sequence
// counters, so the next client registers as 0 and the next order as ord1.
// There is no confirmation and no selective scope.
// @Summary Delete all data
// @Success 204
// @Router /cleanup [post]
func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	ctx, span := otelx.AddSpan(r.Context(), "cleanup")
	defer span.End()

	if err := h.store.Reset(ctx); err != nil {
		h.internalError(w, "reset store", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
