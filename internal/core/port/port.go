package port

import (
	"context"

	"github.com/ionecenter/marketplace/internal/core/domain"
)

// KeyValueStore is the persistent string-keyed blob store backing the
// state stores. Values are JSON. Load returns [domain.ErrNotFound] for
// an absent key.
type KeyValueStore interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
	Delete(key string) error
}

// ProductCatalog is read-only reference data. Lookup returns
// [domain.ErrNotFound] for an unknown id.
type ProductCatalog interface {
	Product(ctx context.Context, id string) (domain.Product, error)
	Products(ctx context.Context) ([]domain.Product, error)
}

type CartKeeper interface {
	AddItem(ctx context.Context, p domain.Product, qty int) error
	RemoveItem(ctx context.Context, productID string)
	UpdateQty(ctx context.Context, productID string, qty int) error
	Clear(ctx context.Context)
	Items() []domain.CartItem
	Total(ctx context.Context) float64
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) bool
	Signup(ctx context.Context, name, email, password string, role domain.Role) bool
	Logout(ctx context.Context)
	Session() (domain.User, bool)
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) bool
	Users() []domain.User
}

type PreferencesKeeper interface {
	Locale() domain.Locale
	Currency() domain.Currency
	SetLocale(l domain.Locale) error
	SetCurrency(c domain.Currency) error
	ConvertPrice(amountUSD float64) float64
	FormatPrice(amountUSD float64) string
	SubscribeLocale(fn func(domain.Locale)) (cancel func())
}

type OrdersReader interface {
	BuyerOrders(ctx context.Context, buyerID string) []domain.Order
	SellerOrders(ctx context.Context, sellerID string) []domain.Order
}

// EventsProducer emits client events to the analytics stream.
type EventsProducer interface {
	ProduceEvent(ctx context.Context, e domain.ClientEvent) error
}

// EventsProducerFunc adapts a function to EventsProducer, letting the
// wiring layer stamp attribution before delegating to the real producer.
type EventsProducerFunc func(ctx context.Context, e domain.ClientEvent) error

func (f EventsProducerFunc) ProduceEvent(ctx context.Context, e domain.ClientEvent) error {
	return f(ctx, e)
}

// UserMirror pushes a public user record to the optional remote store.
type UserMirror interface {
	MirrorUser(ctx context.Context, u domain.User) error
}

// OrdersSource fetches order history from the optional remote store.
type OrdersSource interface {
	FetchBuyerOrders(ctx context.Context, buyerID string) ([]domain.Order, error)
	FetchSellerOrders(ctx context.Context, sellerID string) ([]domain.Order, error)
}

// ActivityReader serves per-user activity counts folded from the client
// events stream.
type ActivityReader interface {
	UserActivity(userID string) (int64, error)
}
