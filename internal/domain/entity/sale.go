package entity

import "time"

// CustomerRef is the populated customer reference embedded in sale records.
type CustomerRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// SaleItem is one line of a sale as the backend stores it.
type SaleItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"lineTotal"`
}

// Sale represents a persisted sale record. Customer is nil when the
// referenced customer has been deleted.
type Sale struct {
	ID            string       `json:"_id"`
	Date          time.Time    `json:"date"`
	Customer      *CustomerRef `json:"customerId"`
	PaymentMethod string       `json:"paymentMethod"`
	TotalAmount   int64        `json:"totalAmount"`
	AmountPaid    int64        `json:"amountPaid"`
	AmountPending int64        `json:"amountPending"`
	Items         []SaleItem   `json:"items"`
}
