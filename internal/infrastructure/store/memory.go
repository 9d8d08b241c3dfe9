package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// MemoryRecordStore is an in-memory RecordStore for local development and
// tests. Filters are evaluated against the records' json field names.
type MemoryRecordStore struct {
	mu   sync.RWMutex
	data map[string]map[string]any // collection -> id -> record
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		data: make(map[string]map[string]any),
	}
}

// Insert stores a record
func (s *MemoryRecordStore) Insert(_ context.Context, collection, id string, row any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] == nil {
		s.data[collection] = make(map[string]any)
	}
	s.data[collection][id] = row
	return nil
}

// Get retrieves a record by id
func (s *MemoryRecordStore) Get(_ context.Context, collection, id string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data[collection] == nil {
		return nil, false, nil
	}
	row, ok := s.data[collection][id]
	return row, ok, nil
}

// GetAll retrieves all records in a collection
func (s *MemoryRecordStore) GetAll(_ context.Context, collection string) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []any
	for _, row := range s.data[collection] {
		rows = append(rows, row)
	}
	return rows, nil
}

// Select retrieves records matching the filter
func (s *MemoryRecordStore) Select(_ context.Context, collection string, filter Filter) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []any
	for _, row := range s.data[collection] {
		match := true
		for field, want := range filter {
			// category_id filters by membership of the record's category id
			// list, mirroring the SQL store's ANY(category_ids).
			if field == "category_id" {
				got, ok := fieldByJSONName(row, "category_ids")
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, field)
				}
				ids, _ := got.([]string)
				id, _ := want.(string)
				if !containsString(ids, id) {
					match = false
					break
				}
				continue
			}
			got, ok := fieldByJSONName(row, field)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, field)
			}
			if !reflect.DeepEqual(got, want) {
				match = false
				break
			}
		}
		if match {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Update modifies a record using an update function
func (s *MemoryRecordStore) Update(_ context.Context, collection, id string, updateFn func(current any) any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] == nil {
		return false, nil
	}
	current, ok := s.data[collection][id]
	if !ok {
		return false, nil
	}
	s.data[collection][id] = updateFn(current)
	return true, nil
}

// Delete removes a record
func (s *MemoryRecordStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] != nil {
		delete(s.data[collection], id)
	}
	return nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// fieldByJSONName resolves a struct field value by its json tag name.
func fieldByJSONName(row any, name string) (any, bool) {
	v := reflect.ValueOf(row)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if tag == name {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}
