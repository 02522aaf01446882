package entity

// ProductRef is the populated product reference the inventory and sales
// endpoints embed. The referenced product may have been deleted since.
type ProductRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// InventoryItem represents the current stock of one product.
type InventoryItem struct {
	ID           string      `json:"_id"`
	Product      *ProductRef `json:"productId"`
	CurrentStock int         `json:"currentStock"`
}

// StockEntry is the payload for a stock-addition entry.
type StockEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
