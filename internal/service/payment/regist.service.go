package payment

import (
	"context"
	"encoding/json"
	"portrait-backend/internal/pkg/gateway"
)

type Service struct {
	provider gateway.Provider
}

type IService interface {
	GetOrderStatus(ctx context.Context, orderID int64) (*StatusResponse, error)
}

func NewService(provider gateway.Provider) IService {
	return &Service{
		provider: provider,
	}
}

// StatusResponse is the public body of the status endpoint. Field names are
// part of the client contract.
type StatusResponse struct {
	Success    bool            `json:"success"`
	IDOrder    int64           `json:"idOrder"`
	State      string          `json:"state"`
	Amount     json.RawMessage `json:"amount"`
	Currency   string          `json:"currency"`
	DatePay    *string         `json:"datePay"`
	PaymentURL *string         `json:"paymentUrl"`
}

// StatusQuery binds the status endpoint's query string.
type StatusQuery struct {
	IDOrder string `form:"idOrder" binding:"required,orderID"`
}
