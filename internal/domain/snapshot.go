package domain

import "time"

// PendingOrderSnapshot is a session-held mirror of cart and customer data
// captured just before the gateway handoff. It is only a valid fallback read
// source for the order id it was captured under.
type PendingOrderSnapshot struct {
	OrderID   string       `json:"order_id"`
	Items     []TaggedLine `json:"items"`
	Total     int64        `json:"total"`
	Customer  Customer     `json:"customer"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (s *PendingOrderSnapshot) Matches(orderID string) bool {
	return s != nil && orderID != "" && s.OrderID == orderID
}
