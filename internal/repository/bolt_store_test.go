package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/paylane/payment-service/internal/models"
)

func newTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreSaveAndFind(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	transaction := &models.Transaction{
		ID:      "txn-1",
		OwnerID: "u1",
		Amount:  75,
		Status:  models.StatusCreated,
	}
	if err := store.Save(ctx, transaction); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	found, err := store.FindByID(ctx, "txn-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.OwnerID != "u1" || found.Amount != 75 || found.Status != models.StatusCreated {
		t.Errorf("unexpected record: %+v", found)
	}
}

func TestBoltStoreFindMissing(t *testing.T) {
	store := newTestBoltStore(t)

	_, err := store.FindByID(context.Background(), "txn-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBoltStoreUpsert(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	transaction := &models.Transaction{ID: "txn-1", OwnerID: "u1", Amount: 75, Status: models.StatusCaptured}
	store.Save(ctx, transaction)

	transaction.RefundedAmount = 25
	if err := store.Save(ctx, transaction); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	found, _ := store.FindByID(ctx, "txn-1")
	if found.RefundedAmount != 25 {
		t.Errorf("expected refundedAmount 25 after upsert, got %.2f", found.RefundedAmount)
	}
}

func TestBoltStoreExists(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	store.Save(ctx, &models.Transaction{ID: "txn-1", OwnerID: "u1", Amount: 10, Status: models.StatusCreated})

	exists, err := store.Exists(ctx, "txn-1")
	if err != nil || !exists {
		t.Errorf("expected txn-1 to exist, got exists=%v err=%v", exists, err)
	}
	exists, err = store.Exists(ctx, "txn-2")
	if err != nil || exists {
		t.Errorf("expected txn-2 to not exist, got exists=%v err=%v", exists, err)
	}
}
