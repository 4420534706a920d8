package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

type CartHandler struct {
	cart    port.CartKeeper
	catalog port.ProductCatalog
}

func RegisterCart(mux *http.ServeMux, cart port.CartKeeper, catalog port.ProductCatalog) {
	h := CartHandler{cart, catalog}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	h.writeCart(w, r, slog.With("op", op))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var v AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if v.Qty == 0 {
		v.Qty = 1
	}

	p, err := h.catalog.Product(r.Context(), v.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read catalog", http.StatusServiceUnavailable)
		log.Error("failed to read catalog", "err", err)
		return
	}

	if err := h.cart.AddItem(r.Context(), p, v.Qty); err != nil {
		http.Error(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}
	h.writeCart(w, r, log)
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	var v UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.cart.UpdateQty(r.Context(), r.PathValue("id"), v.Qty)
	if err != nil {
		http.Error(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}
	h.writeCart(w, r, log)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) writeCart(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	items := h.cart.Items()
	v := Cart{
		Items: make([]CartItem, 0, len(items)),
		Total: h.cart.Total(r.Context()),
	}
	for _, it := range items {
		v.Items = append(v.Items, CartItem{ProductID: it.ProductID, Qty: it.Qty})
	}
	writeJSON(w, log, v)
}
