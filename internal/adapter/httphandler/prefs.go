package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

type PrefsHandler struct {
	prefs port.PreferencesKeeper
}

func RegisterPrefs(mux *http.ServeMux, prefs port.PreferencesKeeper) {
	h := PrefsHandler{prefs}
	mux.HandleFunc("GET /v1/prefs", h.GetPrefs)
	mux.HandleFunc("PUT /v1/prefs/locale", h.PutLocale)
	mux.HandleFunc("PUT /v1/prefs/currency", h.PutCurrency)
	mux.HandleFunc("GET /v1/prefs/price", h.GetPrice)
}

func (h PrefsHandler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	const op = "PrefsHandler.GetPrefs"
	log := slog.With("op", op)

	l := h.prefs.Locale()
	writeJSON(w, log, Preferences{
		Locale:   string(l),
		RTL:      l.RTL(),
		Currency: string(h.prefs.Currency()),
	})
}

func (h PrefsHandler) PutLocale(w http.ResponseWriter, r *http.Request) {
	const op = "PrefsHandler.PutLocale"
	log := slog.With("op", op)

	var v SetLocale
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if err := h.prefs.SetLocale(domain.Locale(v.Locale)); err != nil {
		http.Error(w, "unknown locale", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h PrefsHandler) PutCurrency(w http.ResponseWriter, r *http.Request) {
	const op = "PrefsHandler.PutCurrency"
	log := slog.With("op", op)

	var v SetCurrency
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if err := h.prefs.SetCurrency(domain.Currency(v.Currency)); err != nil {
		http.Error(w, "unknown currency", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h PrefsHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	const op = "PrefsHandler.GetPrice"
	log := slog.With("op", op)

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	writeJSON(w, log, FormattedPrice{
		Amount:    h.prefs.ConvertPrice(amount),
		Formatted: h.prefs.FormatPrice(amount),
	})
}
