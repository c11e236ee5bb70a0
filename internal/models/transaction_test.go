package models

import "testing"

func TestRefundableAmount(t *testing.T) {
	transaction := &Transaction{Amount: 100, RefundedAmount: 30}
	if got := transaction.RefundableAmount(); got != 70 {
		t.Errorf("RefundableAmount() = %.2f, want 70", got)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, status := range []TransactionStatus{StatusCreated, StatusAuthorized, StatusCaptured, StatusRefunded} {
		if !status.IsValid() {
			t.Errorf("%s should be valid", status)
		}
	}
	if TransactionStatus("PENDING").IsValid() {
		t.Error("unknown status should not be valid")
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if !StatusRefunded.IsTerminal() {
		t.Error("REFUNDED should be terminal")
	}
	for _, status := range []TransactionStatus{StatusCreated, StatusAuthorized, StatusCaptured} {
		if status.IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func TestNewTransactionView(t *testing.T) {
	transaction := &Transaction{
		ID:             "txn-1",
		OwnerID:        "u1",
		Amount:         100,
		RefundedAmount: 25,
		Status:         StatusCaptured,
	}
	view := NewTransactionView(transaction)
	if view.RefundableAmount != 75 {
		t.Errorf("view refundableAmount = %.2f, want 75", view.RefundableAmount)
	}
	if view.ID != "txn-1" || view.Status != StatusCaptured {
		t.Errorf("view fields not copied: %+v", view)
	}
}
