package receipt

import (
	"sync"

	"github.com/google/uuid"
)

// Store defines the interface for scored receipt persistence.
// Entries are write-once: there is no update or delete.
type Store interface {
	// Put stores a receipt with its points under a freshly generated ID
	Put(receipt *Receipt, points int) (string, error)

	// Points returns the points for an ID; ok is false if the ID is unknown
	Points(id string) (points int, ok bool, err error)

	// Get returns the scored receipt for an ID; ok is false if the ID is unknown
	Get(id string) (scored *ScoredReceipt, ok bool, err error)
}

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// uuidGenerator generates random (version 4) UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// NewIDGenerator returns the default 128-bit random ID generator
func NewIDGenerator() IDGenerator {
	return &uuidGenerator{}
}

// MemoryStore implements Store with a map that lives as long as the process.
// Nothing is ever evicted, so memory grows with every accepted receipt.
type MemoryStore struct {
	mu          sync.RWMutex
	receipts    map[string]*ScoredReceipt
	idGenerator IDGenerator
}

// NewMemoryStore creates a new MemoryStore with the default ID generator
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithGenerator(NewIDGenerator())
}

// NewMemoryStoreWithGenerator creates a new MemoryStore with a custom ID generator for testing
func NewMemoryStoreWithGenerator(idGen IDGenerator) *MemoryStore {
	return &MemoryStore{
		receipts:    make(map[string]*ScoredReceipt),
		idGenerator: idGen,
	}
}

// Put stores a copy of a receipt and its points
func (m *MemoryStore) Put(receipt *Receipt, points int) (string, error) {
	id := m.idGenerator.Generate()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.receipts[id]; exists {
		return "", ErrIDCollision
	}
	scored := &ScoredReceipt{ID: id, Points: points, Receipt: receipt}
	m.receipts[id] = scored.clone()
	return id, nil
}

// Points returns the stored points for an ID
func (m *MemoryStore) Points(id string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scored, ok := m.receipts[id]
	if !ok {
		return 0, false, nil
	}
	return scored.Points, true, nil
}

// Get returns a copy of the stored receipt for an ID
func (m *MemoryStore) Get(id string) (*ScoredReceipt, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scored, ok := m.receipts[id]
	if !ok {
		return nil, false, nil
	}
	return scored.clone(), true, nil
}

// Len returns the number of stored receipts
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.receipts)
}
