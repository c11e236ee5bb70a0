package query

import (
	"context"
	"errors"

	"github.com/paylane/payment-service/internal/events"
	"github.com/paylane/payment-service/internal/models"
	"github.com/paylane/payment-service/internal/repository"
)

// ViewCacher is the cache-warming side of the read repository.
type ViewCacher interface {
	CacheTransactionView(ctx context.Context, view *models.TransactionView)
}

// ViewProjector rebuilds the transaction view cache from lifecycle events.
// Running it as a stream consumer keeps replicas' read models converging on
// the same state even when another instance performed the mutation.
type ViewProjector struct {
	store repository.TransactionStore
	views ViewCacher
}

func NewViewProjector(store repository.TransactionStore, views ViewCacher) *ViewProjector {
	return &ViewProjector{store: store, views: views}
}

// Handle refreshes the cached view for the transaction named by the event.
// A record missing from the store is skipped, not failed: the event may
// refer to a transaction held by a different backend.
func (p *ViewProjector) Handle(ctx context.Context, event events.Event) error {
	var payload events.TransactionLifecycleEvent
	if err := events.DecodeData(event, &payload); err != nil {
		return err
	}
	if payload.TransactionID == "" {
		return nil
	}

	transaction, err := p.store.FindByID(ctx, payload.TransactionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	p.views.CacheTransactionView(ctx, models.NewTransactionView(transaction))
	return nil
}
