package models

import "time"

// TransactionView is the read-optimised projection of a transaction. It
// carries the derived RefundableAmount so API consumers never have to compute
// it themselves.
type TransactionView struct {
	ID               string            `json:"id"`
	OwnerID          string            `json:"ownerId"`
	Amount           float64           `json:"amount"`
	RefundedAmount   float64           `json:"refundedAmount"`
	RefundableAmount float64           `json:"refundableAmount"`
	Status           TransactionStatus `json:"status"`
	CreatedAt        time.Time         `json:"createdTimestamp"`
	UpdatedAt        time.Time         `json:"updatedTimestamp"`
}

// NewTransactionView builds the read projection from the write model.
func NewTransactionView(t *Transaction) *TransactionView {
	return &TransactionView{
		ID:               t.ID,
		OwnerID:          t.OwnerID,
		Amount:           t.Amount,
		RefundedAmount:   t.RefundedAmount,
		RefundableAmount: t.RefundableAmount(),
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
