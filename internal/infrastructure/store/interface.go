package store

import (
	"context"
	"errors"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnsupportedFilter = errors.New("unsupported filter field")
)

// Filter selects records by field equality. Supported fields depend on the
// collection; an unsupported field yields ErrUnsupportedFilter.
type Filter map[string]any

// RecordStore is the collection-scoped record store every data-access module
// talks to. Rows are the typed record structs from records.go.
type RecordStore interface {
	// Insert stores a new record under the given id.
	Insert(ctx context.Context, collection, id string, row any) error

	// Get retrieves a record by id.
	Get(ctx context.Context, collection, id string) (any, bool, error)

	// GetAll retrieves all records in a collection.
	GetAll(ctx context.Context, collection string) ([]any, error)

	// Select retrieves the records matching the filter.
	Select(ctx context.Context, collection string, filter Filter) ([]any, error)

	// Update modifies a record using an update function.
	Update(ctx context.Context, collection, id string, updateFn func(current any) any) (bool, error)

	// Delete removes a record.
	Delete(ctx context.Context, collection, id string) error
}
