package command

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/paylane/payment-service/internal/cqrs"
	"github.com/paylane/payment-service/internal/events"
	"github.com/paylane/payment-service/internal/models"
	"github.com/paylane/payment-service/internal/repository"
	"github.com/paylane/payment-service/internal/utils"
)

// ViewCacher warms the read model after a successful mutation.
type ViewCacher interface {
	CacheTransactionView(ctx context.Context, view *models.TransactionView)
}

// EventPublisher emits lifecycle events after a successful mutation.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransactionCommandService owns the payment lifecycle state machine:
//
//	CREATED -> AUTHORIZED -> CAPTURED -> REFUNDED (terminal)
//
// Every operation validates before it mutates, so a failed command never
// leaves the store partially updated. The service-level mutex serializes the
// find-then-save sequence; the store contract itself offers no isolation.
type TransactionCommandService struct {
	store     repository.TransactionStore
	views     ViewCacher
	publisher EventPublisher
	mu        sync.Mutex
}

func NewTransactionCommandService(store repository.TransactionStore, views ViewCacher, publisher EventPublisher) *TransactionCommandService {
	return &TransactionCommandService{store: store, views: views, publisher: publisher}
}

// CreateTransaction opens a new transaction in CREATED status with nothing
// refunded yet.
func (s *TransactionCommandService) CreateTransaction(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if cmd.OwnerID == "" {
		return nil, &models.InvalidArgumentError{Reason: "ownerId must not be empty"}
	}
	if cmd.Amount <= 0 {
		return nil, &models.InvalidArgumentError{Reason: "amount must be positive"}
	}

	ctx := context.Background()
	now := time.Now().UTC()
	transaction := &models.Transaction{
		ID:             utils.GenerateID("txn"),
		OwnerID:        cmd.OwnerID,
		Amount:         cmd.Amount,
		RefundedAmount: 0,
		Status:         models.StatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Save(ctx, transaction); err != nil {
		return nil, err
	}

	s.propagate(ctx, transaction, events.TransactionCreated)
	return transaction, nil
}

// AuthorizeTransaction moves a CREATED transaction to AUTHORIZED.
func (s *TransactionCommandService) AuthorizeTransaction(cmd cqrs.AuthorizeTransactionCommand) (*models.Transaction, error) {
	return s.transition(cmd.TransactionID, "authorize", models.StatusCreated, models.StatusAuthorized, events.TransactionAuthorized)
}

// CaptureTransaction moves an AUTHORIZED transaction to CAPTURED.
func (s *TransactionCommandService) CaptureTransaction(cmd cqrs.CaptureTransactionCommand) (*models.Transaction, error) {
	return s.transition(cmd.TransactionID, "capture", models.StatusAuthorized, models.StatusCaptured, events.TransactionCaptured)
}

// RefundTransaction applies a partial or full refund to a CAPTURED
// transaction. Refunds accumulate: each call adds to the running total, and
// the transaction closes as REFUNDED once the total reaches the captured
// amount. The >= comparison (rather than ==) tolerates float rounding; the
// refundable-amount guard keeps overshoot impossible in the first place.
func (s *TransactionCommandService) RefundTransaction(cmd cqrs.RefundTransactionCommand) (*models.Transaction, error) {
	if cmd.Amount <= 0 {
		return nil, &models.InvalidArgumentError{Reason: "refund amount must be positive"}
	}

	ctx := context.Background()
	s.mu.Lock()
	transaction, err := s.findByID(ctx, cmd.TransactionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if transaction.Status != models.StatusCaptured {
		s.mu.Unlock()
		return nil, &models.InvalidStateError{
			TransactionID: cmd.TransactionID,
			Action:        "refund",
			Status:        transaction.Status,
		}
	}
	if available := transaction.RefundableAmount(); cmd.Amount > available {
		s.mu.Unlock()
		return nil, &models.InvalidRefundAmountError{
			TransactionID: cmd.TransactionID,
			Requested:     cmd.Amount,
			Available:     available,
		}
	}

	transaction.RefundedAmount += cmd.Amount
	if transaction.RefundedAmount >= transaction.Amount {
		transaction.Status = models.StatusRefunded
	}
	transaction.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, transaction); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	if transaction.Status == models.StatusRefunded {
		s.propagate(ctx, transaction, events.TransactionRefunded)
	} else {
		s.cacheView(ctx, transaction)
		s.publish(ctx, events.RefundApplied, events.RefundAppliedEvent{
			TransactionID:    transaction.ID,
			OwnerID:          transaction.OwnerID,
			RefundAmount:     cmd.Amount,
			RefundedAmount:   transaction.RefundedAmount,
			RefundableAmount: transaction.RefundableAmount(),
		})
	}
	return transaction, nil
}

// transition performs the simple guarded status moves (authorize, capture).
func (s *TransactionCommandService) transition(id, action string, from, to models.TransactionStatus, eventType string) (*models.Transaction, error) {
	ctx := context.Background()
	s.mu.Lock()
	transaction, err := s.findByID(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if transaction.Status != from {
		s.mu.Unlock()
		return nil, &models.InvalidStateError{
			TransactionID: id,
			Action:        action,
			Status:        transaction.Status,
		}
	}

	transaction.Status = to
	transaction.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, transaction); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.propagate(ctx, transaction, eventType)
	return transaction, nil
}

func (s *TransactionCommandService) findByID(ctx context.Context, id string) (*models.Transaction, error) {
	transaction, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &models.TransactionNotFoundError{TransactionID: id}
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// propagate warms the read cache and publishes the standard lifecycle event.
// Both are best-effort: the command already succeeded.
func (s *TransactionCommandService) propagate(ctx context.Context, transaction *models.Transaction, eventType string) {
	s.cacheView(ctx, transaction)
	s.publish(ctx, eventType, events.TransactionLifecycleEvent{
		TransactionID:    transaction.ID,
		OwnerID:          transaction.OwnerID,
		Amount:           transaction.Amount,
		RefundedAmount:   transaction.RefundedAmount,
		RefundableAmount: transaction.RefundableAmount(),
		Status:           string(transaction.Status),
	})
}

func (s *TransactionCommandService) cacheView(ctx context.Context, transaction *models.Transaction) {
	if s.views == nil {
		return
	}
	s.views.CacheTransactionView(ctx, models.NewTransactionView(transaction))
}

func (s *TransactionCommandService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, eventType, data); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "error", err)
	}
}
