package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrUnknownLocale   = errors.New("unknown locale")
	ErrUnknownCurrency = errors.New("unknown currency")
)
