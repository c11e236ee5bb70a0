package repository

import (
	"context"
	"errors"

	"github.com/paylane/payment-service/internal/models"
)

// ErrNotFound is returned by FindByID when no record exists for the given
// identifier. Absence is an expected outcome, distinct from an
// infrastructure failure.
var ErrNotFound = errors.New("transaction not found")

// TransactionStore is the persistence contract consumed by the lifecycle
// services. Any backing store satisfying it is substitutable without
// touching the business logic.
type TransactionStore interface {
	// Save upserts the record by its identifier.
	Save(ctx context.Context, transaction *models.Transaction) error
	// FindByID returns the current record, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
	// Exists reports whether a record exists for the identifier.
	Exists(ctx context.Context, id string) (bool, error)
}
