package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

type (
	Order struct {
		ID        string      `json:"id"`
		BuyerID   string      `json:"buyerId"`
		SellerID  string      `json:"sellerId"`
		Items     []OrderItem `json:"items"`
		Total     float64     `json:"total"`
		Status    OrderStatus `json:"status"`
		CreatedAt time.Time   `json:"createdAt"`
	}

	OrderItem struct {
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Qty       int     `json:"qty"`
		UnitPrice float64 `json:"unitPrice"`
	}
)
