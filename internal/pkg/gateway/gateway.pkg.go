package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"portrait-backend/internal/pkg/helper"
	"strconv"
	"strings"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotConfigured = errors.New("payment gateway is not configured")
)

// OrderStatus is the provider's view of an order. Fields are relayed to
// clients as received: Amount keeps the provider's JSON bytes, and DatePay
// and PaymentURL stay nil when the provider sends null.
type OrderStatus struct {
	ID         int64           `json:"id"`
	State      string          `json:"state"`
	Amount     json.RawMessage `json:"amount"`
	Currency   string          `json:"currency"`
	DatePay    *string         `json:"datePay"`
	PaymentURL *string         `json:"paymentUrl"`
}

// Provider looks up order state at the payment provider. One call, one
// round trip; implementations never cache.
type Provider interface {
	GetOrderStatus(ctx context.Context, orderID int64) (*OrderStatus, error)
}

type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  int
	ProxyURL string
}

// Client talks to the studio's REST payment gateway.
type Client struct {
	baseURL string
	apiKey  string
	http    *helper.OutboundHTTPClient
}

func New(cfg *Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: helper.NewOutboundHTTPClient(&helper.OutboundConfig{
			ProxyURL:       cfg.ProxyURL,
			RequestTimeout: cfg.Timeout,
		}),
	}
}

// GetOrderStatus calls GET {base}/orders/{id}.
func (c *Client) GetOrderStatus(ctx context.Context, orderID int64) (*OrderStatus, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	headers := http.Header{}
	if c.apiKey != "" {
		headers.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Request(&helper.HTTPRequestPayload{
		Method: helper.GET,
		URL:    c.baseURL + "/orders/" + strconv.FormatInt(orderID, 10),
	}, &helper.HTTPRequestConfig{
		Ctx:     ctx,
		Headers: headers,
	})
	if err != nil {
		return nil, fmt.Errorf("order status lookup: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("order status lookup: %w", &helper.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(resp.Data), 512),
		})
	}

	var status OrderStatus
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to decode order status: %w", err)
	}

	return &status, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
