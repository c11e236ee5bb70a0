package models

import "fmt"

// InvalidArgumentError rejects malformed input before any mutation happens.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// TransactionNotFoundError means the referenced identifier has no record.
type TransactionNotFoundError struct {
	TransactionID string
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found", e.TransactionID)
}

// InvalidStateError means the attempted action is not legal in the
// transaction's current status.
type InvalidStateError struct {
	TransactionID string
	Action        string
	Status        TransactionStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s transaction %s in status %s", e.Action, e.TransactionID, e.Status)
}

// InvalidRefundAmountError means the requested refund exceeds what is still
// refundable. It carries both figures for diagnostics.
type InvalidRefundAmountError struct {
	TransactionID string
	Requested     float64
	Available     float64
}

func (e *InvalidRefundAmountError) Error() string {
	return fmt.Sprintf("refund of %.2f exceeds refundable amount %.2f on transaction %s",
		e.Requested, e.Available, e.TransactionID)
}
