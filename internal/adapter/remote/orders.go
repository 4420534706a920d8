package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

var _ port.OrdersSource = (*OrdersClient)(nil)

// OrdersClient fetches order history from a remote HTTP store.
type OrdersClient struct {
	url    string
	client *http.Client
}

func NewOrdersClient(url string) OrdersClient {
	return OrdersClient{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (c OrdersClient) FetchBuyerOrders(
	ctx context.Context, buyerID string,
) ([]domain.Order, error) {
	const op = "OrdersClient.FetchBuyerOrders"
	return c.fetch(ctx, op, "buyer_id", buyerID)
}

func (c OrdersClient) FetchSellerOrders(
	ctx context.Context, sellerID string,
) ([]domain.Order, error) {
	const op = "OrdersClient.FetchSellerOrders"
	return c.fetch(ctx, op, "seller_id", sellerID)
}

func (c OrdersClient) fetch(
	ctx context.Context, op, param, id string,
) ([]domain.Order, error) {
	q := url.Values{param: []string{id}}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.url+"?"+q.Encode(), nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, res.Status)
	}

	var orders []domain.Order
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
