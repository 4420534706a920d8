package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

var _ port.OrdersReader = (*OrdersService)(nil)

// OrdersService serves buyer and seller order history. The remote source
// is best-effort: on failure or when unconfigured it falls back to the
// built-in mock orders and surfaces no error to callers.
type OrdersService struct {
	source port.OrdersSource
}

// NewOrdersService wraps an optional remote source; pass nil to serve
// mock data only.
func NewOrdersService(source port.OrdersSource) OrdersService {
	return OrdersService{source}
}

func (s OrdersService) BuyerOrders(ctx context.Context, buyerID string) []domain.Order {
	const op = "OrdersService.BuyerOrders"

	if s.source != nil {
		os, err := s.source.FetchBuyerOrders(ctx, buyerID)
		if err == nil {
			return os
		}
		slog.Warn("remote orders fetch failed, serving mock data",
			"op", op, "buyerID", buyerID, "err", err)
	}
	return mockOrders(buyerID, "")
}

func (s OrdersService) SellerOrders(ctx context.Context, sellerID string) []domain.Order {
	const op = "OrdersService.SellerOrders"

	if s.source != nil {
		os, err := s.source.FetchSellerOrders(ctx, sellerID)
		if err == nil {
			return os
		}
		slog.Warn("remote orders fetch failed, serving mock data",
			"op", op, "sellerID", sellerID, "err", err)
	}
	return mockOrders("", sellerID)
}

// mockOrders builds the demo order history against the seed catalog.
func mockOrders(buyerID, sellerID string) []domain.Order {
	if buyerID == "" {
		buyerID = "buyer-demo"
	}
	if sellerID == "" {
		sellerID = "seller-demo"
	}
	base := time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
	return []domain.Order{
		{
			ID:       "order-1001",
			BuyerID:  buyerID,
			SellerID: sellerID,
			Items: []domain.OrderItem{
				{ProductID: "p1", Name: "Wireless Headphones", Qty: 2, UnitPrice: 89.99},
			},
			Total:     179.98,
			Status:    domain.OrderDelivered,
			CreatedAt: base,
		},
		{
			ID:       "order-1002",
			BuyerID:  buyerID,
			SellerID: sellerID,
			Items: []domain.OrderItem{
				{ProductID: "p2", Name: "Smartwatch Pro", Qty: 1, UnitPrice: 149.99},
				{ProductID: "p3", Name: "Portable Speaker", Qty: 1, UnitPrice: 39.99},
			},
			Total:     189.98,
			Status:    domain.OrderPending,
			CreatedAt: base.AddDate(0, 0, 12),
		},
	}
}
