package cqrs

type CreateTransactionCommand struct {
	OwnerID string
	Amount  float64
}

type AuthorizeTransactionCommand struct {
	TransactionID string
}

type CaptureTransactionCommand struct {
	TransactionID string
}

type RefundTransactionCommand struct {
	TransactionID string
	Amount        float64
}
