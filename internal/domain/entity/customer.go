package entity

import "strings"

// Customer represents a customer in the directory service. One reserved
// record (matched by case-insensitive name) acts as the anonymous walk-in
// counterparty.
type Customer struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// IsWalkIn reports whether the customer is the reserved walk-in record for
// the given label.
func (c *Customer) IsWalkIn(walkInLabel string) bool {
	return strings.EqualFold(c.Name, walkInLabel)
}
