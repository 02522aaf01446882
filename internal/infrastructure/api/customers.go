package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// CustomerInput is the create/update payload for a customer.
type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// ListCustomers fetches the customer directory.
func (c *Client) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, nil, &customers, nil); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer creates a customer.
func (c *Client) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	var customer entity.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", nil, input, &customer, nil); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer updates a customer.
func (c *Client) UpdateCustomer(ctx context.Context, id string, input *CustomerInput) (*entity.Customer, error) {
	var customer entity.Customer
	if err := c.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(id), nil, input, &customer, nil); err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer deletes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+url.PathEscape(id), nil, nil, nil, nil)
}
