// Command demo walks a payment transaction through its full lifecycle
// against the in-memory store: the happy path, split refunds, and each
// failure class. It needs no external services.
package main

import (
	"errors"
	"fmt"

	"github.com/paylane/payment-service/internal/command"
	"github.com/paylane/payment-service/internal/cqrs"
	"github.com/paylane/payment-service/internal/models"
	"github.com/paylane/payment-service/internal/repository"
)

func main() {
	store := repository.NewMemoryStore()
	service := command.NewTransactionCommandService(store, nil, nil)

	fmt.Println("=== Payment Transaction Lifecycle Demo ===")

	fmt.Println("\n--- Full lifecycle ---")
	t1, _ := service.CreateTransaction(cqrs.CreateTransactionCommand{OwnerID: "user-123", Amount: 100})
	printTransaction("created", t1)
	t1, _ = service.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{TransactionID: t1.ID})
	printTransaction("authorized", t1)
	t1, _ = service.CaptureTransaction(cqrs.CaptureTransactionCommand{TransactionID: t1.ID})
	printTransaction("captured", t1)
	t1, _ = service.RefundTransaction(cqrs.RefundTransactionCommand{TransactionID: t1.ID, Amount: 100})
	printTransaction("refunded", t1)

	fmt.Println("\n--- Partial refunds ---")
	t2, _ := service.CreateTransaction(cqrs.CreateTransactionCommand{OwnerID: "user-456", Amount: 200})
	service.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{TransactionID: t2.ID})
	t2, _ = service.CaptureTransaction(cqrs.CaptureTransactionCommand{TransactionID: t2.ID})
	printTransaction("captured", t2)
	for _, amount := range []float64{50, 100, 50} {
		t2, _ = service.RefundTransaction(cqrs.RefundTransactionCommand{TransactionID: t2.ID, Amount: amount})
		printTransaction(fmt.Sprintf("after refund of %.0f", amount), t2)
	}

	fmt.Println("\n--- Invalid state transition ---")
	t3, _ := service.CreateTransaction(cqrs.CreateTransactionCommand{OwnerID: "user-789", Amount: 50})
	service.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{TransactionID: t3.ID})
	_, err := service.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{TransactionID: t3.ID})
	printError(err)

	fmt.Println("\n--- Refund exceeding refundable amount ---")
	t4, _ := service.CreateTransaction(cqrs.CreateTransactionCommand{OwnerID: "user-111", Amount: 75})
	service.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{TransactionID: t4.ID})
	service.CaptureTransaction(cqrs.CaptureTransactionCommand{TransactionID: t4.ID})
	_, err = service.RefundTransaction(cqrs.RefundTransactionCommand{TransactionID: t4.ID, Amount: 100})
	printError(err)

	fmt.Println("\n--- Unknown transaction ---")
	_, err = service.CaptureTransaction(cqrs.CaptureTransactionCommand{TransactionID: "txn-does-not-exist"})
	printError(err)

	fmt.Println("\n--- Capture without authorization ---")
	t5, _ := service.CreateTransaction(cqrs.CreateTransactionCommand{OwnerID: "user-222", Amount: 30})
	_, err = service.CaptureTransaction(cqrs.CaptureTransactionCommand{TransactionID: t5.ID})
	printError(err)

	fmt.Println("\n--- Refund without capture ---")
	t6, _ := service.CreateTransaction(cqrs.CreateTransactionCommand{OwnerID: "user-333", Amount: 40})
	service.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{TransactionID: t6.ID})
	_, err = service.RefundTransaction(cqrs.RefundTransactionCommand{TransactionID: t6.ID, Amount: 20})
	printError(err)

	fmt.Println("\n=== Demo complete ===")
}

func printTransaction(label string, t *models.Transaction) {
	fmt.Printf("%-22s %s status=%s refunded=%.2f refundable=%.2f\n",
		label+":", t.ID, t.Status, t.RefundedAmount, t.RefundableAmount())
}

func printError(err error) {
	if err == nil {
		fmt.Println("ERROR: expected a failure but the operation succeeded")
		return
	}
	var (
		invalidState  *models.InvalidStateError
		invalidRefund *models.InvalidRefundAmountError
		notFound      *models.TransactionNotFoundError
	)
	switch {
	case errors.As(err, &invalidState), errors.As(err, &invalidRefund), errors.As(err, &notFound):
		fmt.Printf("rejected as expected: %v\n", err)
	default:
		fmt.Printf("unexpected error: %v\n", err)
	}
}
