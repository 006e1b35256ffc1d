package receipt

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const bucketName = "receipts"

// BoltStore implements Store using BoltDB, for receipts that must outlive the process
type BoltStore struct {
	db          *bbolt.DB
	idGenerator IDGenerator
}

// NewBoltStore creates a new BoltStore instance
func NewBoltStore(path string) (*BoltStore, error) {
	return NewBoltStoreWithGenerator(path, NewIDGenerator())
}

// NewBoltStoreWithGenerator creates a new BoltStore with a custom ID generator for testing
func NewBoltStoreWithGenerator(path string, idGen IDGenerator) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create bucket if it doesn't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db, idGenerator: idGen}, nil
}

// Put stores a receipt and its points in a single transaction
func (b *BoltStore) Put(receipt *Receipt, points int) (string, error) {
	id := b.idGenerator.Generate()
	data, err := json.Marshal(&ScoredReceipt{ID: id, Points: points, Receipt: receipt})
	if err != nil {
		return "", fmt.Errorf("marshaling receipt: %w", err)
	}

	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket.Get([]byte(id)) != nil {
			return ErrIDCollision
		}
		return bucket.Put([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("saving receipt: %w", err)
	}
	return id, nil
}

// Points returns the stored points for an ID
func (b *BoltStore) Points(id string) (int, bool, error) {
	scored, ok, err := b.Get(id)
	if err != nil || !ok {
		return 0, ok, err
	}
	return scored.Points, true, nil
}

// Get returns the stored receipt for an ID
func (b *BoltStore) Get(id string) (*ScoredReceipt, bool, error) {
	var scored *ScoredReceipt
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &scored)
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading receipt %s: %w", id, err)
	}
	return scored, scored != nil, nil
}

// Close closes the database connection
func (b *BoltStore) Close() error {
	return b.db.Close()
}
