package repository

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/paylane/payment-service/internal/models"
	paymentredis "github.com/paylane/payment-service/internal/redis"
)

const transactionViewKeyPrefix = "transaction:view:"

// TransactionReadRepository serves transaction views. Redis is the primary
// read store; on a miss it falls back to the write store, rebuilds the
// projection and warms the cache.
type TransactionReadRepository struct {
	store TransactionStore
	cache *paymentredis.ViewCache[models.TransactionView]
}

func NewTransactionReadRepository(store TransactionStore, redisClient *goredis.Client) *TransactionReadRepository {
	return &TransactionReadRepository{
		store: store,
		cache: paymentredis.NewViewCache[models.TransactionView](redisClient, 0),
	}
}

// GetByID returns a TransactionView by attempting Redis first, then the
// write store.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id string) (*models.TransactionView, error) {
	cacheKey := transactionViewKeyPrefix + id
	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	transaction, err := r.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, &models.TransactionNotFoundError{TransactionID: id}
	}
	if err != nil {
		return nil, err
	}

	view := models.NewTransactionView(transaction)
	r.CacheTransactionView(ctx, view)
	return view, nil
}

// CacheTransactionView stores the read model for a transaction in Redis.
// Called by the command service after every successful mutation.
func (r *TransactionReadRepository) CacheTransactionView(ctx context.Context, view *models.TransactionView) {
	r.cache.Set(ctx, transactionViewKeyPrefix+view.ID, view)
}
