package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// StockCorrection is the payload for a manual stock correction.
type StockCorrection struct {
	CurrentStock int `json:"currentStock"`
}

// ListInventory fetches current stock for every product.
func (c *Client) ListInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, nil, &items, nil); err != nil {
		return nil, err
	}
	return items, nil
}

// AddStock records a stock-addition entry for a product.
func (c *Client) AddStock(ctx context.Context, entry *entity.StockEntry) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	if err := c.do(ctx, http.MethodPost, "/inventory/add", nil, entry, &item, nil); err != nil {
		return nil, err
	}
	return &item, nil
}

// CorrectStock overwrites the stored stock level of an inventory record.
func (c *Client) CorrectStock(ctx context.Context, id string, correction *StockCorrection) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	if err := c.do(ctx, http.MethodPut, "/inventory/"+url.PathEscape(id), nil, correction, &item, nil); err != nil {
		return nil, err
	}
	return &item, nil
}
