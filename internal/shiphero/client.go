package shiphero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/mostafa-azimi/touring-app-sub000/pkg/errors"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/resilience"
)

// TokenProvider supplies a valid bearer access token on demand, refreshing
// transparently when the current one is expired.
type TokenProvider interface {
	GetValidAccessToken(ctx context.Context) (string, error)
}

// Config holds client configuration
type Config struct {
	EndpointURL string
	Timeout     time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig(endpointURL string) *Config {
	return &Config{
		EndpointURL: endpointURL,
		Timeout:     30 * time.Second,
	}
}

// Client calls the external warehouse API. Every call goes through the
// circuit breaker; there is no internal retry loop, callers record failures
// and continue.
type Client struct {
	config     *Config
	httpClient *http.Client
	tokens     TokenProvider
	breaker    *resilience.CircuitBreaker
}

// NewClient creates a new API client
func NewClient(config *Config, tokens TokenProvider, breaker *resilience.CircuitBreaker) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		tokens:  tokens,
		breaker: breaker,
	}
}

// execute posts one GraphQL request and returns the raw data payload.
// Non-2xx responses and GraphQL errors arrays are both failures.
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	token, err := c.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.EndpointURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, apperrors.ErrServiceUnavailable("warehouse API").
				WithDetail("status", fmt.Sprintf("%d", resp.StatusCode)).
				Wrap(fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody)))
		}

		var parsed graphQLResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		if len(parsed.Errors) > 0 {
			messages := make([]string, 0, len(parsed.Errors))
			for _, e := range parsed.Errors {
				messages = append(messages, e.Message)
			}
			return nil, apperrors.ErrUpstreamRejected(strings.Join(messages, "; "))
		}

		return parsed.Data, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(json.RawMessage), nil
}

const orderCreateMutation = `
mutation CreateOrder($data: CreateOrderInput!) {
  order_create(data: $data) {
    order {
      id
      order_number
      legacy_id
    }
  }
}`

// CreateOrder submits a sales order and extracts the created order
func (c *Client) CreateOrder(ctx context.Context, input OrderCreateInput) (*SubmitResult, error) {
	data, err := c.execute(ctx, orderCreateMutation, map[string]interface{}{"data": input})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		OrderCreate struct {
			Order CreatedOrder `json:"order"`
		} `json:"order_create"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode order_create response: %w", err)
	}

	order := envelope.OrderCreate.Order
	if order.ID == "" {
		return nil, apperrors.ErrUpstreamRejected("order_create returned no order")
	}

	return &SubmitResult{
		ExternalID:  order.ID,
		OrderNumber: order.OrderNumber,
		LegacyID:    order.LegacyID,
	}, nil
}

const orderCancelMutation = `
mutation CancelOrder($data: CancelOrderInput!) {
  order_cancel(data: $data) {
    order {
      id
    }
  }
}`

// CancelOrder cancels a previously created sales order by external id
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := c.execute(ctx, orderCancelMutation, map[string]interface{}{
		"data": map[string]interface{}{"order_id": orderID},
	})
	return err
}

const purchaseOrderCreateMutation = `
mutation CreatePurchaseOrder($data: CreatePurchaseOrderInput!) {
  purchase_order_create(data: $data) {
    purchase_order {
      id
      po_number
      legacy_id
    }
  }
}`

// CreatePurchaseOrder submits a purchase order and extracts the created PO
func (c *Client) CreatePurchaseOrder(ctx context.Context, input PurchaseOrderCreateInput) (*SubmitResult, error) {
	data, err := c.execute(ctx, purchaseOrderCreateMutation, map[string]interface{}{"data": input})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		PurchaseOrderCreate struct {
			PurchaseOrder CreatedPurchaseOrder `json:"purchase_order"`
		} `json:"purchase_order_create"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode purchase_order_create response: %w", err)
	}

	po := envelope.PurchaseOrderCreate.PurchaseOrder
	if po.ID == "" {
		return nil, apperrors.ErrUpstreamRejected("purchase_order_create returned no purchase order")
	}

	return &SubmitResult{
		ExternalID:  po.ID,
		OrderNumber: po.PONumber,
		LegacyID:    po.LegacyID,
	}, nil
}

const purchaseOrderCancelMutation = `
mutation CancelPurchaseOrder($data: ClosePurchaseOrderInput!) {
  purchase_order_cancel(data: $data) {
    purchase_order {
      id
    }
  }
}`

// CancelPurchaseOrder cancels a previously created purchase order
func (c *Client) CancelPurchaseOrder(ctx context.Context, poID string) error {
	_, err := c.execute(ctx, purchaseOrderCancelMutation, map[string]interface{}{
		"data": map[string]interface{}{"po_id": poID},
	})
	return err
}

const warehousesQuery = `
query Warehouses {
  account {
    data {
      warehouses {
        id
        identifier
        address {
          name
          address1
          city
          state
          zip
          country
        }
      }
    }
  }
}`

// Warehouses lists the warehouses configured in the external account
func (c *Client) Warehouses(ctx context.Context) ([]WarehouseInfo, error) {
	data, err := c.execute(ctx, warehousesQuery, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Account struct {
			Data struct {
				Warehouses []WarehouseInfo `json:"warehouses"`
			} `json:"data"`
		} `json:"account"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode warehouses response: %w", err)
	}

	return envelope.Account.Data.Warehouses, nil
}

const productsQuery = `
query Products($first: Int!) {
  products {
    data(first: $first) {
      edges {
        node {
          id
          sku
          name
        }
      }
    }
  }
}`

// Products lists products from the external catalog
func (c *Client) Products(ctx context.Context, first int) ([]ProductInfo, error) {
	data, err := c.execute(ctx, productsQuery, map[string]interface{}{"first": first})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Products struct {
			Data struct {
				Edges []struct {
					Node ProductInfo `json:"node"`
				} `json:"edges"`
			} `json:"data"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}

	products := make([]ProductInfo, 0, len(envelope.Products.Data.Edges))
	for _, edge := range envelope.Products.Data.Edges {
		products = append(products, edge.Node)
	}
	return products, nil
}

const accountQuery = `
query Account {
  account {
    data {
      id
      email
      company_name
    }
  }
}`

// Account fetches the authenticated account details
func (c *Client) Account(ctx context.Context) (*AccountInfo, error) {
	data, err := c.execute(ctx, accountQuery, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Account struct {
			Data struct {
				ID          string `json:"id"`
				Email       string `json:"email"`
				CompanyName string `json:"company_name"`
			} `json:"data"`
		} `json:"account"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode account response: %w", err)
	}

	return &AccountInfo{
		ID:      envelope.Account.Data.ID,
		Email:   envelope.Account.Data.Email,
		Company: envelope.Account.Data.CompanyName,
	}, nil
}

// Proxy forwards a raw GraphQL request body and returns the raw response
// body. Used by the pass-through proxy endpoint only.
func (c *Client) Proxy(ctx context.Context, body []byte) ([]byte, int, error) {
	token, err := c.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to obtain access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, resp.StatusCode, nil
}
