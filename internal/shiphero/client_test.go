package shiphero

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mostafa-azimi/touring-app-sub000/pkg/errors"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/resilience"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	breaker := resilience.NewCircuitBreaker(
		resilience.DefaultCircuitBreakerConfig("test"),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)

	return NewClient(DefaultConfig(server.URL), StaticTokenProvider("test-token"), breaker)
}

func TestCreateOrderSuccess(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Query     string `json:"query"`
			Variables struct {
				Data OrderCreateInput `json:"data"`
			} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "order_create")
		assert.Equal(t, "BULK-42-001", req.Variables.Data.OrderNumber)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"order_create": {
					"order": {"id": "T3JkZXI6MQ==", "order_number": "BULK-42-001", "legacy_id": 1001}
				}
			}
		}`))
	})

	result, err := client.CreateOrder(context.Background(), OrderCreateInput{OrderNumber: "BULK-42-001"})
	require.NoError(t, err)

	assert.Equal(t, "T3JkZXI6MQ==", result.ExternalID)
	assert.Equal(t, "BULK-42-001", result.OrderNumber)
	assert.Equal(t, int64(1001), result.LegacyID)
}

func TestCreateOrderHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := client.CreateOrder(context.Background(), OrderCreateInput{OrderNumber: "BULK-42-001"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeServiceUnavailable, appErr.Code)
}

func TestCreateOrderGraphQLErrors(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": null,
			"errors": [{"message": "order number already exists"}]
		}`))
	})

	_, err := client.CreateOrder(context.Background(), OrderCreateInput{OrderNumber: "BULK-42-001"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUpstreamRejected, appErr.Code)
	assert.Contains(t, appErr.Message, "order number already exists")
}

func TestCancelOrder(t *testing.T) {
	var gotOrderID string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string `json:"query"`
			Variables struct {
				Data map[string]string `json:"data"`
			} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "order_cancel")
		gotOrderID = req.Variables.Data["order_id"]

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"order_cancel": {"order": {"id": "T3JkZXI6MQ=="}}}}`))
	})

	require.NoError(t, client.CancelOrder(context.Background(), "T3JkZXI6MQ=="))
	assert.Equal(t, "T3JkZXI6MQ==", gotOrderID)
}

func TestCreatePurchaseOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"purchase_order_create": {
					"purchase_order": {"id": "UE86MQ==", "po_number": "Host-06/15/2025", "legacy_id": 55}
				}
			}
		}`))
	})

	result, err := client.CreatePurchaseOrder(context.Background(), PurchaseOrderCreateInput{PONumber: "Host-06/15/2025"})
	require.NoError(t, err)

	assert.Equal(t, "UE86MQ==", result.ExternalID)
	assert.Equal(t, "Host-06/15/2025", result.OrderNumber)
	assert.Equal(t, int64(55), result.LegacyID)
}

func TestCancelPurchaseOrderGraphQLError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": [{"message": "po already closed"}]}`))
	})

	err := client.CancelPurchaseOrder(context.Background(), "UE86MQ==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "po already closed")
}

func TestCreateOrderEmptyResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"order_create": {"order": {}}}}`))
	})

	_, err := client.CreateOrder(context.Background(), OrderCreateInput{OrderNumber: "BULK-42-001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no order")
}

func TestStaticTokenProvider(t *testing.T) {
	token, err := StaticTokenProvider("abc").GetValidAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticTokenProvider("").GetValidAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}
