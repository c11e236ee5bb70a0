package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/paylane/payment-service/internal/models"
)

const transactionsBucket = "transactions"

// BoltStore is a single-file embedded TransactionStore. It needs no external
// database process, which makes it the durable option for local setups.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path and ensures the
// transactions bucket exists.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(transactionsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create transactions bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Save(_ context.Context, transaction *models.Transaction) error {
	data, err := json.Marshal(transaction)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(transactionsBucket)).Put([]byte(transaction.ID), data)
	})
}

func (s *BoltStore) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(transactionsBucket)).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &transaction)
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *BoltStore) Exists(_ context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket([]byte(transactionsBucket)).Get([]byte(id)) != nil
		return nil
	})
	return exists, err
}
