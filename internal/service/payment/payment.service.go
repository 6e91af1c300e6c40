package payment

import (
	"context"
	"fmt"
)

// GetOrderStatus relays the provider's order fields without interpreting
// them. Every failure is returned to the caller.
func (s *Service) GetOrderStatus(ctx context.Context, orderID int64) (*StatusResponse, error) {
	order, err := s.provider.GetOrderStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("provider returned no order for %d", orderID)
	}

	return &StatusResponse{
		Success:    true,
		IDOrder:    order.ID,
		State:      order.State,
		Amount:     order.Amount,
		Currency:   order.Currency,
		DatePay:    order.DatePay,
		PaymentURL: order.PaymentURL,
	}, nil
}
