package models

import "time"

// TransactionStatus is the lifecycle state of a payment transaction.
//
// Valid transitions:
// CREATED -> AUTHORIZED -> CAPTURED -> REFUNDED (terminal)
type TransactionStatus string

const (
	StatusCreated    TransactionStatus = "CREATED"
	StatusAuthorized TransactionStatus = "AUTHORIZED"
	StatusCaptured   TransactionStatus = "CAPTURED"
	StatusRefunded   TransactionStatus = "REFUNDED"
)

// IsValid reports whether s is one of the four known lifecycle states.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusAuthorized, StatusCaptured, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are defined from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusRefunded
}

// Transaction is a single payment from creation through authorization,
// capture and (partial or full) refund. ID, OwnerID and Amount are fixed at
// creation; only Status and RefundedAmount change afterwards, and
// RefundedAmount only ever grows.
type Transaction struct {
	ID             string            `json:"id"`
	OwnerID        string            `json:"ownerId"`
	Amount         float64           `json:"amount"`
	RefundedAmount float64           `json:"refundedAmount"`
	Status         TransactionStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdTimestamp"`
	UpdatedAt      time.Time         `json:"updatedTimestamp"`
}

// RefundableAmount returns what is still available for refund: the captured
// amount minus everything refunded so far.
func (t *Transaction) RefundableAmount() float64 {
	return t.Amount - t.RefundedAmount
}
