package order

import "time"

// Event types published to Kafka after successful state changes.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventProofReviewed      = "order.proof_reviewed"
)

// Event is the envelope for order events on the wire.
type Event struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// OrderPlaced is emitted once per successful placement; the notifier consumes
// it to send the confirmation email.
type OrderPlaced struct {
	OrderID     string       `json:"order_id"`
	OrderNumber string       `json:"order_number"`
	UserID      string       `json:"user_id"`
	Email       string       `json:"email"`
	Total       int          `json:"total"`
	Items       []PlacedItem `json:"items"`
	PlacedAt    time.Time    `json:"placed_at"`
}

// PlacedItem is an order line as carried inside OrderPlaced.
type PlacedItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unit_price"`
}

// OrderStatusChanged is emitted on admin status transitions.
type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// ProofReviewed is emitted when an admin verifies or rejects a payment proof.
type ProofReviewed struct {
	OrderID    string        `json:"order_id"`
	Approved   bool          `json:"approved"`
	NewStatus  PaymentStatus `json:"new_status"`
	ReviewedAt time.Time     `json:"reviewed_at"`
}
