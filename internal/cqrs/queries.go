package cqrs

// GetTransactionQuery fetches a single transaction by ID.
type GetTransactionQuery struct {
	TransactionID string
}
