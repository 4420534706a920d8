package remote_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionecenter/marketplace/internal/adapter/remote"
	"github.com/ionecenter/marketplace/internal/core/domain"
)

func TestUsersMirror(t *testing.T) {
	user := domain.User{
		ID:        "user-1",
		Name:      "Dana",
		Email:     "dana@example.com",
		Role:      domain.RoleBuyer,
		CreatedAt: time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC),
	}

	t.Run("PutsRecordWithToken", func(t *testing.T) {
		var got domain.User
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				auth = r.Header.Get("Authorization")
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			}))
		defer srv.Close()

		m := remote.NewUsersMirror(srv.URL, "t0ken")
		require.NoError(t, m.MirrorUser(t.Context(), user))
		assert.Equal(t, "Bearer t0ken", auth)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("RetriesTransientFailure", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					w.WriteHeader(http.StatusBadGateway)
				}
			}))
		defer srv.Close()

		m := remote.NewUsersMirror(srv.URL, "")
		require.NoError(t, m.MirrorUser(t.Context(), user))
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("FailsAfterMaxAttempts", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
		defer srv.Close()

		m := remote.NewUsersMirror(srv.URL, "")
		require.Error(t, m.MirrorUser(t.Context(), user))
		assert.EqualValues(t, 3, calls.Load())
	})
}

func TestOrdersClient(t *testing.T) {
	orders := []domain.Order{{ID: "order-9001", BuyerID: "buyer-7", Total: 12.34}}

	t.Run("FetchBuyerOrders", func(t *testing.T) {
		var gotParam string
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotParam = r.URL.Query().Get("buyer_id")
				require.NoError(t, json.NewEncoder(w).Encode(orders))
			}))
		defer srv.Close()

		c := remote.NewOrdersClient(srv.URL)
		os, err := c.FetchBuyerOrders(t.Context(), "buyer-7")
		require.NoError(t, err)
		assert.Equal(t, "buyer-7", gotParam)
		require.Len(t, os, 1)
		assert.Equal(t, "order-9001", os[0].ID)
	})

	t.Run("FetchSellerOrders", func(t *testing.T) {
		var gotParam string
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotParam = r.URL.Query().Get("seller_id")
				require.NoError(t, json.NewEncoder(w).Encode(orders))
			}))
		defer srv.Close()

		c := remote.NewOrdersClient(srv.URL)
		_, err := c.FetchSellerOrders(t.Context(), "seller-7")
		require.NoError(t, err)
		assert.Equal(t, "seller-7", gotParam)
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
		defer srv.Close()

		c := remote.NewOrdersClient(srv.URL)
		_, err := c.FetchBuyerOrders(t.Context(), "buyer-7")
		assert.Error(t, err)
	})
}
