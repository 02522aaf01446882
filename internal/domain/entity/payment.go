package entity

import "time"

// Payment represents a debt payment recorded against a customer's balance.
type Payment struct {
	ID         string    `json:"_id"`
	CustomerID string    `json:"customerId"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	Date       time.Time `json:"date"`
}
