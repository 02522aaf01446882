package api

import (
	"context"
	"net/http"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// CreateSaleRequest is the atomic sale-creation payload.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customerId"`
	AmountPaid    int64             `json:"amountPaid"`
	PaymentMethod string            `json:"paymentMethod"`
	Items         []entity.SaleItem `json:"items"`
}

// CreateSale submits a sale. The idempotency key protects a retry after a
// network failure from creating the sale twice; pass the same key for every
// retry of the same composed sale.
func (c *Client) CreateSale(ctx context.Context, req *CreateSaleRequest, idempotencyKey string) (*entity.Sale, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var sale entity.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", nil, req, &sale, headers); err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListSales fetches the sales history.
func (c *Client) ListSales(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", nil, nil, &sales, nil); err != nil {
		return nil, err
	}
	return sales, nil
}
