package query

import (
	"context"

	"github.com/paylane/payment-service/internal/cqrs"
	"github.com/paylane/payment-service/internal/models"
)

// TransactionViewReader is the read-side lookup consumed by the query service.
type TransactionViewReader interface {
	GetByID(ctx context.Context, id string) (*models.TransactionView, error)
}

// TransactionQueryService serves transaction reads from the view repository.
type TransactionQueryService struct {
	readRepo TransactionViewReader
}

func NewTransactionQueryService(readRepo TransactionViewReader) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) GetTransaction(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetByID(context.Background(), q.TransactionID)
}
