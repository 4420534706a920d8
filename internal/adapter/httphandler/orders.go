package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

type OrdersHandler struct {
	orders port.OrdersReader
}

func RegisterOrders(mux *http.ServeMux, orders port.OrdersReader) {
	h := OrdersHandler{orders}
	mux.HandleFunc("GET /v1/orders", h.GetOrders)
}

func (h OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrders"
	log := slog.With("op", op)

	q := r.URL.Query()
	buyerID := q.Get("buyer_id")
	sellerID := q.Get("seller_id")

	var os []domain.Order
	switch {
	case buyerID != "":
		os = h.orders.BuyerOrders(r.Context(), buyerID)
	case sellerID != "":
		os = h.orders.SellerOrders(r.Context(), sellerID)
	default:
		http.Error(w, "buyer_id or seller_id is required", http.StatusBadRequest)
		return
	}

	vs := make([]Order, 0, len(os))
	for _, o := range os {
		vs = append(vs, orderFromDomain(o))
	}
	writeJSON(w, log, vs)
}
