// Package api exposes the HTTP surface of the service: CRUD over clients,
// products and orders, the statistics endpoints, and maintenance.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"orderdesk/internal/metrics"
	"orderdesk/internal/store"
)

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	store store.Store
	log   *log.Entry
}

// NewHandler creates a Handler over the given store.
func NewHandler(s store.Store) *Handler {
	return &Handler{
		store: s,
		log:   log.WithField("component", "api"),
	}
}

// Router builds the full route table, including the swagger UI and the
// Prometheus endpoint. m may be nil to run without instrumentation (tests).
func (h *Handler) Router(m *metrics.HTTPMetrics) http.Handler {
	r := mux.NewRouter()
	r.Use(h.requestLogMiddleware)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.HandleFunc("/clients", h.registerClient).Methods(http.MethodPut)
	r.HandleFunc("/clients/{id}", h.getClient).Methods(http.MethodGet)
	r.HandleFunc("/clients/{id}", h.deleteClient).Methods(http.MethodDelete)
	r.HandleFunc("/clients/{id}/orders", h.listClientOrders).Methods(http.MethodGet)

	r.HandleFunc("/products", h.registerProduct).Methods(http.MethodPut)
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.deleteProduct).Methods(http.MethodDelete)

	r.HandleFunc("/orders", h.placeOrder).Methods(http.MethodPut)

	r.HandleFunc("/statistics/top/clients", h.topClients).Methods(http.MethodGet)
	r.HandleFunc("/statistics/top/products", h.topProducts).Methods(http.MethodGet)
	r.HandleFunc("/statistics/orders/total", h.totalOrders).Methods(http.MethodGet)
	r.HandleFunc("/statistics/orders/totalValue", h.totalOrderValue).Methods(http.MethodGet)

	r.HandleFunc("/cleanup", h.cleanup).Methods(http.MethodPost)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

// health reports process liveness.
// @Summary Health check
// @Success 200
// @Router /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// writeJSON serialises v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("write response")
	}
}

// internalError logs the failure and answers 500. Storage errors are the only
// way to get here; input problems are answered with 4xx where they are found.
func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.log.WithError(err).Error(op)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (h *Handler) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.WithFields(log.Fields{
			"requestId": uuid.NewString(),
			"method":    r.Method,
			"path":      r.URL.Path,
			"duration":  time.Since(start),
		}).Info("request")
	})
}
