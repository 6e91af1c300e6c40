package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"portrait-backend/internal/pkg/helper"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	path string
	auth string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.path = r.URL.Path
		seen.auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestGetOrderStatus_Passthrough(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK,
		`{"id":42,"state":"paid","amount":100.50,"currency":"USD","datePay":null,"paymentUrl":"https://pay.example.com/42"}`)

	client := New(&Config{BaseURL: srv.URL + "/", APIKey: "secret"})
	status, err := client.GetOrderStatus(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), status.ID)
	assert.Equal(t, "paid", status.State)
	assert.Equal(t, "100.50", string(status.Amount))
	assert.Equal(t, "USD", status.Currency)
	assert.Nil(t, status.DatePay)
	require.NotNil(t, status.PaymentURL)
	assert.Equal(t, "https://pay.example.com/42", *status.PaymentURL)

	assert.Equal(t, "/orders/42", seen.path)
	assert.Equal(t, "Bearer secret", seen.auth)
}

func TestGetOrderStatus_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{"error":"no such order"}`)

	_, err := New(&Config{BaseURL: srv.URL}).GetOrderStatus(context.Background(), 7)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderStatus_UpstreamFailure(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadGateway, `upstream down`)

	_, err := New(&Config{BaseURL: srv.URL}).GetOrderStatus(context.Background(), 7)

	var statusErr *helper.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestGetOrderStatus_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `not json`)

	_, err := New(&Config{BaseURL: srv.URL}).GetOrderStatus(context.Background(), 7)

	assert.ErrorContains(t, err, "decode")
}

func TestGetOrderStatus_NotConfigured(t *testing.T) {
	_, err := New(&Config{}).GetOrderStatus(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGetOrderStatus_AmountKeepsProviderBytes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"id":1,"amount":"250.00"}`, want: `"250.00"`},
		{name: "null", body: `{"id":1,"amount":null}`, want: `null`},
		{name: "absent", body: `{"id":1}`, want: ``},
		{name: "long decimal", body: `{"id":1,"amount":1234567890.123456789}`, want: `1234567890.123456789`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, tt.body)

			status, err := New(&Config{BaseURL: srv.URL}).GetOrderStatus(context.Background(), 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(status.Amount))
		})
	}
}

func TestGetOrderStatus_NonPositiveIDsReachProvider(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"id":-3,"state":"unknown"}`)

	status, err := New(&Config{BaseURL: srv.URL}).GetOrderStatus(context.Background(), -3)

	require.NoError(t, err)
	assert.Equal(t, int64(-3), status.ID)
	assert.Equal(t, "/orders/-3", seen.path)
}
