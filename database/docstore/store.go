// Package docstore is the document persistence layer: named collections of documents keyed by opaque string IDs.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when a conditional create hits an existing document.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrPreconditionFailed is returned when a CheckOp of a batch does not hold.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Filter is an equality condition on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Where builds an equality filter.
func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Snapshot is a read document.
type Snapshot interface {
	ID() string
	DataTo(v any) error
}

// WriteKind identifies the operation of a batched write.
type WriteKind int

const (
	WriteCreate WriteKind = iota
	WriteSet
	WriteUpdate
	WriteDelete
	WriteCheck
)

// Write is one operation of an atomic batch.
type Write struct {
	Kind       WriteKind
	Collection string
	ID         string
	Data       any
	Fields     map[string]any
}

// CreateOp fails the whole batch with ErrAlreadyExists if the document exists.
func CreateOp(collection, id string, data any) Write {
	return Write{Kind: WriteCreate, Collection: collection, ID: id, Data: data}
}

func SetOp(collection, id string, data any) Write {
	return Write{Kind: WriteSet, Collection: collection, ID: id, Data: data}
}

// UpdateOp fails the whole batch with ErrNotFound if the document is missing.
func UpdateOp(collection, id string, fields map[string]any) Write {
	return Write{Kind: WriteUpdate, Collection: collection, ID: id, Fields: fields}
}

// DeleteOp is a no-op for missing documents.
func DeleteOp(collection, id string) Write {
	return Write{Kind: WriteDelete, Collection: collection, ID: id}
}

// CheckOp makes a batch conditional: the batch fails with ErrPreconditionFailed unless the document
// exists and every listed top-level field equals the given value. Checks see the state before any write
// of the same batch. Compare string fields only; numbers decode differently across backends.
func CheckOp(collection, id string, fields map[string]any) Write {
	return Write{Kind: WriteCheck, Collection: collection, ID: id, Fields: fields}
}

// Store is implemented by every backend.
type Store interface {
	// Get returns ErrNotFound when the document is missing.
	Get(ctx context.Context, collection, id string) (Snapshot, error)
	// Query returns every document matching all filters, in no particular order.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)
	// Create writes a new document, returning ErrAlreadyExists if the ID is taken.
	Create(ctx context.Context, collection, id string, data any) error
	// Set writes or overwrites a document.
	Set(ctx context.Context, collection, id string, data any) error
	// Update sets top-level fields on an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes a document; deleting a missing document succeeds.
	Delete(ctx context.Context, collection, id string) error
	// Batch applies all writes or none of them.
	Batch(ctx context.Context, writes []Write) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
