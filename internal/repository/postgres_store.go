package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paylane/payment-service/internal/models"
)

// PostgresStore persists transactions in PostgreSQL. It is the durable
// TransactionStore used when STORE_BACKEND=postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, owner_id, amount, refunded_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET refunded_amount = EXCLUDED.refunded_amount,
		    status          = EXCLUDED.status,
		    updated_at      = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		transaction.ID, transaction.OwnerID, transaction.Amount,
		transaction.RefundedAmount, transaction.Status,
		transaction.CreatedAt, transaction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `
		SELECT id, owner_id, amount, refunded_amount, status, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`
	var transaction models.Transaction
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&transaction.ID, &transaction.OwnerID, &transaction.Amount,
		&transaction.RefundedAmount, &transaction.Status,
		&transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	return exists, nil
}
