package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID generates a unique ID with the given prefix, e.g. "txn-<uuid>".
func GenerateID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// ValidateTransactionID validates the transaction ID format.
func ValidateTransactionID(transactionID string) bool {
	return strings.HasPrefix(transactionID, "txn-")
}
