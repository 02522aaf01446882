package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// ProductInput is the create/update payload for a catalog product.
type ProductInput struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	UnitPrice    int64  `json:"unitPrice"`
	PackageName  string `json:"packageName,omitempty"`
	PackageUnits int    `json:"packageUnits,omitempty"`
	PackagePrice int64  `json:"packagePrice,omitempty"`
}

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &products, nil); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a catalog product.
func (c *Client) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, input, &product, nil); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a catalog product.
func (c *Client) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, input, &product, nil); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a catalog product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil, nil)
}
