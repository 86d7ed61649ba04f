package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Gateway is the outbound boundary to the upstream commerce API. The
// checkout orchestrator and catalog proxy depend on this interface so tests
// can substitute a stub without a running upstream.
type Gateway interface {
	GetProducts(ctx context.Context, params ProductListParams) (*ProductListResponse, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	GetShippingQuote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
	CreateOrder(ctx context.Context, req OrderRequest) (string, error)
	CreateFishOrder(ctx context.Context, req FishOrderRequest) (string, error)
	CreatePaymentSession(ctx context.Context, req PaymentSessionRequest) (*PaymentSessionResponse, error)
}

// ProductListParams filters the upstream product listing
type ProductListParams struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Client is the HTTP implementation of Gateway
type Client struct {
	config     Config
	httpClient *http.Client
}

var _ Gateway = (*Client)(nil)

// NewClient creates a new commerce API client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetProducts fetches a page of the upstream catalog
func (c *Client) GetProducts(ctx context.Context, params ProductListParams) (*ProductListResponse, error) {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", params.Limit))
	}

	endpoint := "products"
	if encoded := q.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var resp ProductListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product list: %w", err)
	}
	return &resp, nil
}

// GetProduct fetches a single catalog item
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "products/"+url.PathEscape(productID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

// GetShippingQuote asks for the delivery fee for the given items and zone
func (c *Client) GetShippingQuote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "shipping/quote", req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shipping quote: %w", err)
	}

	var resp QuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping quote: %w", err)
	}
	return &resp, nil
}

// CreateOrder submits a regular order and returns the created order id
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "orders", req)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return extractOrderID(body)
}

// CreateFishOrder submits a fish order and returns the created order id
func (c *Client) CreateFishOrder(ctx context.Context, req FishOrderRequest) (string, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "fish-orders", req)
	if err != nil {
		return "", fmt.Errorf("failed to create fish order: %w", err)
	}
	return extractOrderID(body)
}

// CreatePaymentSession starts an online payment for an order
func (c *Client) CreatePaymentSession(ctx context.Context, req PaymentSessionRequest) (*PaymentSessionResponse, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "payments/session", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment session: %w", err)
	}

	var resp PaymentSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment session: %w", err)
	}
	return &resp, nil
}

// extractOrderID pulls the order identifier out of whichever response shape
// the upstream used
func extractOrderID(body []byte) (string, error) {
	var resp orderCreatedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal order response: %w", err)
	}
	id := resp.orderID()
	if id == "" {
		return "", ErrMissingOrderID
	}
	return id, nil
}

// doRequest performs an HTTP request against the upstream API
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	reqURL := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("%w: unexpected status code %d, body: %s", ErrUpstreamFailed, resp.StatusCode, string(body))
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errResp.Format(resp.StatusCode))
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", ErrNotFound, errResp.Format(resp.StatusCode))
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Format(resp.StatusCode))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUpstreamFailed, errResp.Format(resp.StatusCode))
		}
	}

	return body, nil
}
