package domain

import "time"

type EventKind string

const (
	EventCartAdd    EventKind = "cart_add"
	EventCartRemove EventKind = "cart_remove"
	EventCartUpdate EventKind = "cart_update"
	EventCartClear  EventKind = "cart_clear"
	EventLogin      EventKind = "login"
	EventSignup     EventKind = "signup"
	EventLogout     EventKind = "logout"
)

// ClientEvent records one user-initiated store mutation. Events are
// produced best-effort and never block the originating operation.
type ClientEvent struct {
	UserID    string
	Kind      EventKind
	ProductID string
	Qty       int
	At        time.Time
}
