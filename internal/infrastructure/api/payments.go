package api

import (
	"context"
	"net/http"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// PaymentInput is the payload for recording a debt payment.
type PaymentInput struct {
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
}

// CreatePayment records a payment against a customer's outstanding balance.
func (c *Client) CreatePayment(ctx context.Context, input *PaymentInput) (*entity.Payment, error) {
	var payment entity.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", nil, input, &payment, nil); err != nil {
		return nil, err
	}
	return &payment, nil
}
