package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type TrackingStatus string

const (
	TrackingPreparing TrackingStatus = "preparing"
	TrackingReady     TrackingStatus = "ready"
	TrackingDone      TrackingStatus = "done"
)

func ParseTrackingStatus(s string) (TrackingStatus, bool) {
	switch TrackingStatus(s) {
	case TrackingPreparing, TrackingReady, TrackingDone:
		return TrackingStatus(s), true
	}
	return "", false
}

// Terminal reports whether the status removes the order from customer-facing
// lookups. The record itself persists for admin history.
func (s TrackingStatus) Terminal() bool {
	return s == TrackingDone
}

var trackingRank = map[TrackingStatus]int{
	TrackingPreparing: 0,
	TrackingReady:     1,
	TrackingDone:      2,
}

// StatusMachine guards tracking-status transitions. Forward-only by default;
// AllowBackward permits admin corrections such as done -> preparing.
type StatusMachine struct {
	AllowBackward bool
}

func (m StatusMachine) CanTransition(from, to TrackingStatus) bool {
	if from == to {
		return false
	}
	if m.AllowBackward {
		return true
	}
	return trackingRank[to] > trackingRank[from]
}

type Customer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

type OrderItem struct {
	ItemID    string   `bson:"itemId" json:"id"`
	Name      string   `bson:"name" json:"name"`
	UnitPrice int64    `bson:"unitPrice" json:"price"`
	Quantity  int      `bson:"quantity" json:"quantity"`
	LineTotal int64    `bson:"lineTotal" json:"total"`
	Type      LineType `bson:"type" json:"type"`
}

// Order is the durable record created exactly once per order id at payment
// completion. Total must equal the sum of item line totals.
type Order struct {
	OrderID         string         `bson:"_id" json:"order_id"`
	Items           []OrderItem    `bson:"items" json:"items"`
	Total           int64          `bson:"total" json:"total"`
	Customer        Customer       `bson:"customer" json:"customer"`
	Notes           string         `bson:"notes,omitempty" json:"notes,omitempty"`
	PaymentStatus   PaymentStatus  `bson:"paymentStatus" json:"status"`
	TrackingStatus  TrackingStatus `bson:"trackingStatus" json:"order_status"`
	PaymentMethod   string         `bson:"paymentMethod" json:"payment_method"`
	TransactionID   string         `bson:"transactionId,omitempty" json:"transaction_id,omitempty"`
	AdminNotes      string         `bson:"adminNotes,omitempty" json:"admin_notes,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"created_at"`
	StatusUpdatedAt time.Time      `bson:"statusUpdatedAt" json:"status_updated_at"`
}

func OrderItemsFromLines(lines []TaggedLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
			Type:      line.Type,
		})
	}
	return items
}
