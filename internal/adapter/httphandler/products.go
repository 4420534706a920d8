package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

type ProductsHandler struct {
	catalog port.ProductCatalog
}

func RegisterProducts(mux *http.ServeMux, catalog port.ProductCatalog) {
	h := ProductsHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.Products(r.Context())
	if err != nil {
		http.Error(w, "failed to read catalog", http.StatusServiceUnavailable)
		log.Error("failed to read catalog", "err", err)
		return
	}

	vs := make([]Product, 0, len(ps))
	for _, p := range ps {
		vs = append(vs, productFromDomain(p))
	}
	writeJSON(w, log, vs)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	p, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read catalog", http.StatusServiceUnavailable)
		log.Error("failed to read catalog", "id", id, "err", err)
		return
	}
	writeJSON(w, log, productFromDomain(p))
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
