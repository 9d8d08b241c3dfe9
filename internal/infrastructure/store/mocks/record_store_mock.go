package mocks

import (
	"context"
	"sync"

	"github.com/example/dg-storefront/internal/infrastructure/store"
)

// MockRecordStore is a mock implementation of RecordStore for testing
type MockRecordStore struct {
	mu   sync.RWMutex
	data map[string]map[string]any // collection -> id -> record

	// For tracking calls in tests
	InsertCalls []InsertCall
	GetCalls    []GetCall
	DeleteCalls []DeleteCall
	UpdateCalls []UpdateCall

	// FailInsert maps a collection name to the error its next Insert returns
	FailInsert map[string]error
	// FailSelect maps a collection name to the error its next Select returns
	FailSelect map[string]error
}

// InsertCall records parameters passed to Insert
type InsertCall struct {
	Collection string
	ID         string
	Row        any
}

// GetCall records parameters passed to Get
type GetCall struct {
	Collection string
	ID         string
}

// DeleteCall records parameters passed to Delete
type DeleteCall struct {
	Collection string
	ID         string
}

// UpdateCall records parameters passed to Update
type UpdateCall struct {
	Collection string
	ID         string
}

// NewMockRecordStore creates a new MockRecordStore
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{
		data:       make(map[string]map[string]any),
		FailInsert: make(map[string]error),
		FailSelect: make(map[string]error),
	}
}

// Insert stores a record
func (m *MockRecordStore) Insert(_ context.Context, collection, id string, row any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalls = append(m.InsertCalls, InsertCall{
		Collection: collection,
		ID:         id,
		Row:        row,
	})

	if err := m.FailInsert[collection]; err != nil {
		return err
	}

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]any)
	}
	m.data[collection][id] = row
	return nil
}

// Get retrieves a record by id
func (m *MockRecordStore) Get(_ context.Context, collection, id string) (any, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, GetCall{
		Collection: collection,
		ID:         id,
	})

	if m.data[collection] == nil {
		return nil, false, nil
	}
	row, ok := m.data[collection][id]
	return row, ok, nil
}

// GetAll retrieves all records in a collection
func (m *MockRecordStore) GetAll(ctx context.Context, collection string) ([]any, error) {
	return m.Select(ctx, collection, nil)
}

// Select retrieves records matching the filter
func (m *MockRecordStore) Select(_ context.Context, collection string, filter store.Filter) ([]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.FailSelect[collection]; err != nil {
		return nil, err
	}

	mem := store.NewMemoryRecordStore()
	for id, row := range m.data[collection] {
		_ = mem.Insert(context.Background(), collection, id, row)
	}
	return mem.Select(context.Background(), collection, filter)
}

// Update modifies a record using an update function
func (m *MockRecordStore) Update(_ context.Context, collection, id string, updateFn func(current any) any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{
		Collection: collection,
		ID:         id,
	})

	if m.data[collection] == nil {
		return false, nil
	}
	current, ok := m.data[collection][id]
	if !ok {
		return false, nil
	}
	m.data[collection][id] = updateFn(current)
	return true, nil
}

// Delete removes a record
func (m *MockRecordStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{
		Collection: collection,
		ID:         id,
	})

	if m.data[collection] != nil {
		delete(m.data[collection], id)
	}
	return nil
}

// Reset clears all data and recorded calls
func (m *MockRecordStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]any)
	m.InsertCalls = nil
	m.GetCalls = nil
	m.DeleteCalls = nil
	m.UpdateCalls = nil
	m.FailInsert = make(map[string]error)
	m.FailSelect = make(map[string]error)
}

// SetData sets a record directly for testing (without recording the call)
func (m *MockRecordStore) SetData(collection, id string, row any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]any)
	}
	m.data[collection][id] = row
}

// GetData gets a record directly for testing (without recording the call)
func (m *MockRecordStore) GetData(collection, id string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data[collection] == nil {
		return nil, false
	}
	row, ok := m.data[collection][id]
	return row, ok
}

// CountData returns the number of records in a collection
func (m *MockRecordStore) CountData(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}
