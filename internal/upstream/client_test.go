package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 2*time.Second), server
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted order returns a confirmation", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			w.Write([]byte(`{"success": true, "order": {"orderNumber": "ORD-77", "status": "new", "total_amount": 42.5}}`))
		})
		defer server.Close()

		confirmation, err := client.CreateOrder(ctx, &OrderPayload{RestaurantID: "r-1"})

		require.NoError(t, err)
		assert.Equal(t, "ORD-77", confirmation.OrderNumber)
		assert.Equal(t, 42.5, confirmation.TotalAmount)
	})

	t.Run("rejection carries the platform message", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "message": "restaurant closed"}`))
		})
		defer server.Close()

		_, err := client.CreateOrder(ctx, &OrderPayload{RestaurantID: "r-1"})

		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Equal(t, "restaurant closed", submissionErr.Message)
	})

	t.Run("http error status becomes a submission error", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid payload"}`))
		})
		defer server.Close()

		_, err := client.CreateOrder(ctx, &OrderPayload{})

		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Equal(t, "invalid payload", submissionErr.Message)
	})
}

func TestGetOrderStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/ORD-77", r.URL.Path)
		w.Write([]byte(`{"orderNumber": "ORD-77", "order_status": "preparing", "total": 42.5}`))
	})
	defer server.Close()

	info, err := client.GetOrderStatus(context.Background(), "ORD-77")

	require.NoError(t, err)
	assert.Equal(t, "ORD-77", info.OrderNumber)
	assert.Equal(t, "preparing", info.Status)
	assert.Equal(t, 42.5, info.TotalAmount)
}

func TestFetchMenu(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restaurants/r-1/menu", r.URL.Path)
		w.Write([]byte(`[{"id": "p-1", "name": "Falafel", "price": 4.0, "isAvailable": true}]`))
	})
	defer server.Close()

	items, err := client.FetchMenu(context.Background(), "r-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-1", items[0].ProductID)
	// Restaurant id is backfilled from the request path when absent.
	assert.Equal(t, "r-1", items[0].RestaurantID)
}
