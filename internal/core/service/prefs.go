package service

import (
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

// CurrencyKey owns the persisted currency preference. LocaleKey is named
// after the cookie a server-rendering collaborator reads.
const (
	CurrencyKey = "ionecenter_currency"
	LocaleKey   = "NEXT_LOCALE"
)

// Static exchange rates against a USD-denominated price. Not a live FX
// feed.
var exchangeRates = map[domain.Currency]float64{
	domain.CurrencyUSD: 1,
	domain.CurrencySAR: 3.75,
	domain.CurrencyCNY: 7.24,
}

var currencySymbols = map[domain.Currency]string{
	domain.CurrencyUSD: "$",
	domain.CurrencySAR: "ر.س",
	domain.CurrencyCNY: "¥",
}

var _ port.PreferencesKeeper = (*PrefsStore)(nil)

// PrefsStore holds the two global display preferences and provides
// deterministic price conversion and formatting. Locale changes notify
// subscribers so translation-bound views can re-render without a full
// reload.
type PrefsStore struct {
	mu       sync.Mutex
	kv       port.KeyValueStore
	locale   domain.Locale
	currency domain.Currency
	nextSub  int
	subs     map[int]func(domain.Locale)
}

// NewPrefsStore hydrates both preferences from kv. An absent or
// unrecognized persisted value falls back to the default (en / USD).
func NewPrefsStore(kv port.KeyValueStore) *PrefsStore {
	s := &PrefsStore{
		kv:       kv,
		locale:   domain.DefaultLocale,
		currency: domain.DefaultCurrency,
		subs:     make(map[int]func(domain.Locale)),
	}
	s.hydrate()
	return s
}

func (s *PrefsStore) hydrate() {
	const op = "PrefsStore.hydrate"

	if data, err := s.kv.Load(LocaleKey); err == nil {
		if l, ok := domain.ParseLocale(string(data)); ok {
			s.locale = l
		} else {
			slog.Warn("unrecognized persisted locale, using default",
				"op", op, "value", string(data))
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("failed to load locale", "op", op, "err", err)
	}

	if data, err := s.kv.Load(CurrencyKey); err == nil {
		if c, ok := domain.ParseCurrency(string(data)); ok {
			s.currency = c
		} else {
			slog.Warn("unrecognized persisted currency, using default",
				"op", op, "value", string(data))
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("failed to load currency", "op", op, "err", err)
	}
}

func (s *PrefsStore) Locale() domain.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

func (s *PrefsStore) Currency() domain.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetLocale rejects unknown locale codes, leaving the active preference
// unchanged. On success the choice is persisted and subscribers are
// notified.
func (s *PrefsStore) SetLocale(l domain.Locale) error {
	const op = "PrefsStore.SetLocale"

	if _, ok := domain.ParseLocale(string(l)); !ok {
		return domain.ErrUnknownLocale
	}

	s.mu.Lock()
	s.locale = l
	if err := s.kv.Store(LocaleKey, []byte(l)); err != nil {
		slog.Warn("failed to persist locale", "op", op, "err", err)
	}
	subs := make([]func(domain.Locale), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(l)
	}
	return nil
}

// SetCurrency rejects unknown currency codes, leaving the active
// preference unchanged. No notification: conversion is computed on every
// read.
func (s *PrefsStore) SetCurrency(c domain.Currency) error {
	const op = "PrefsStore.SetCurrency"

	if _, ok := domain.ParseCurrency(string(c)); !ok {
		return domain.ErrUnknownCurrency
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
	if err := s.kv.Store(CurrencyKey, []byte(c)); err != nil {
		slog.Warn("failed to persist currency", "op", op, "err", err)
	}
	return nil
}

// ConvertPrice multiplies a USD amount by the active currency's fixed
// rate.
func (s *PrefsStore) ConvertPrice(amountUSD float64) float64 {
	return amountUSD * exchangeRates[s.Currency()]
}

// FormatPrice converts, then renders two decimal places with the
// currency symbol before the amount for USD and CNY, after it for SAR.
func (s *PrefsStore) FormatPrice(amountUSD float64) string {
	c := s.Currency()
	v := strconv.FormatFloat(amountUSD*exchangeRates[c], 'f', 2, 64)
	sym := currencySymbols[c]
	if c == domain.CurrencySAR {
		return v + " " + sym
	}
	return sym + v
}

// SubscribeLocale registers fn to run after every successful locale
// change. The returned cancel removes the subscription.
func (s *PrefsStore) SubscribeLocale(fn func(domain.Locale)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
