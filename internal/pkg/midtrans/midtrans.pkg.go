package midtrans

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"portrait-backend/internal/pkg/gateway"
	"strconv"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

type Config struct {
	ServerKey   string
	Environment string // "sandbox" or "production"
}

// MidtransClient serves order status from Midtrans when PAYMENT_PROVIDER=midtrans.
type MidtransClient struct {
	CoreAPI coreapi.Client
}

func Setup(cfg *Config) *MidtransClient {
	env := midtrans.Sandbox
	if cfg.Environment == "production" {
		env = midtrans.Production
	}

	var coreAPIClient coreapi.Client
	coreAPIClient.New(cfg.ServerKey, env)

	return &MidtransClient{
		CoreAPI: coreAPIClient,
	}
}

// GetOrderStatus maps a Midtrans transaction status onto gateway.OrderStatus.
// The Midtrans order id is the decimal form of orderID.
func (m *MidtransClient) GetOrderStatus(ctx context.Context, orderID int64) (*gateway.OrderStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, midErr := m.CoreAPI.CheckTransaction(strconv.FormatInt(orderID, 10))
	if midErr != nil {
		if midErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("order %d: %w", orderID, gateway.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("midtrans check error: %s", midErr.GetMessage())
	}
	if resp == nil {
		return nil, fmt.Errorf("midtrans check error: empty response for order %d", orderID)
	}

	status := &gateway.OrderStatus{
		ID:       orderID,
		State:    resp.TransactionStatus,
		Currency: resp.Currency,
	}
	if resp.GrossAmount != "" {
		status.Amount, _ = json.Marshal(resp.GrossAmount)
	}
	if resp.SettlementTime != "" {
		settled := resp.SettlementTime
		status.DatePay = &settled
	}

	return status, nil
}
