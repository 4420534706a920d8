package domain

// CartItem is a cart line: a product reference and a positive quantity.
// A cart holds at most one item per ProductID.
type CartItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}
