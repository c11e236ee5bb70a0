package events

import "time"

// Event types
const (
	TransactionCreated    = "transaction.created"
	TransactionAuthorized = "transaction.authorized"
	TransactionCaptured   = "transaction.captured"
	TransactionRefunded   = "transaction.refunded"
	RefundApplied         = "transaction.refund.applied"
)

// Stream names
const (
	TransactionEventsStream = "transaction.events"
)

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TransactionLifecycleEvent is the payload for every status change.
type TransactionLifecycleEvent struct {
	TransactionID    string  `json:"transactionId"`
	OwnerID          string  `json:"ownerId"`
	Amount           float64 `json:"amount"`
	RefundedAmount   float64 `json:"refundedAmount"`
	RefundableAmount float64 `json:"refundableAmount"`
	Status           string  `json:"status"`
}

// RefundAppliedEvent is the payload for a partial refund that did not close
// the transaction.
type RefundAppliedEvent struct {
	TransactionID    string  `json:"transactionId"`
	OwnerID          string  `json:"ownerId"`
	RefundAmount     float64 `json:"refundAmount"`
	RefundedAmount   float64 `json:"refundedAmount"`
	RefundableAmount float64 `json:"refundableAmount"`
}
