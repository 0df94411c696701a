package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps JSON-encoded documents in process memory. It backs tests and DOC_STORE=memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]map[string]json.RawMessage)}
}

type memorySnapshot struct {
	id  string
	doc map[string]json.RawMessage
}

func (s memorySnapshot) ID() string { return s.id }

func (s memorySnapshot) DataTo(v any) error {
	raw, err := json.Marshal(s.doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func encodeDocument(data any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("document must encode to an object: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document must not be null")
	}
	return doc, nil
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return memorySnapshot{id: id, doc: doc}, nil
}

func (m *MemoryStore) Query(_ context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	want := make([][]byte, len(filters))
	for i, f := range filters {
		raw, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid filter value for %s: %w", f.Field, err)
		}
		want[i] = raw
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Snapshot
	for id, doc := range m.data[collection] {
		matched := true
		for i, f := range filters {
			if !bytes.Equal(doc[f.Field], want[i]) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, memorySnapshot{id: id, doc: doc})
		}
	}
	return out, nil
}

func (m *MemoryStore) Create(ctx context.Context, collection, id string, data any) error {
	return m.Batch(ctx, []Write{CreateOp(collection, id, data)})
}

func (m *MemoryStore) Set(ctx context.Context, collection, id string, data any) error {
	return m.Batch(ctx, []Write{SetOp(collection, id, data)})
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return m.Batch(ctx, []Write{UpdateOp(collection, id, fields)})
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	return m.Batch(ctx, []Write{DeleteOp(collection, id)})
}

type docKey struct {
	collection, id string
}

// Batch stages every write against an overlay and commits only when all of them succeed.
func (m *MemoryStore) Batch(_ context.Context, writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// nil value in the overlay marks a deletion.
	overlay := make(map[docKey]map[string]json.RawMessage)
	lookup := func(k docKey) (map[string]json.RawMessage, bool) {
		if doc, staged := overlay[k]; staged {
			return doc, doc != nil
		}
		doc, ok := m.data[k.collection][k.id]
		return doc, ok
	}

	for _, w := range writes {
		if w.Kind == WriteCheck {
			if err := m.check(w); err != nil {
				return err
			}
		}
	}

	for _, w := range writes {
		k := docKey{w.Collection, w.ID}
		switch w.Kind {
		case WriteCheck:
			// evaluated above
		case WriteCreate:
			if _, exists := lookup(k); exists {
				return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrAlreadyExists)
			}
			doc, err := encodeDocument(w.Data)
			if err != nil {
				return err
			}
			overlay[k] = doc
		case WriteSet:
			doc, err := encodeDocument(w.Data)
			if err != nil {
				return err
			}
			overlay[k] = doc
		case WriteUpdate:
			current, exists := lookup(k)
			if !exists {
				return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
			}
			doc := make(map[string]json.RawMessage, len(current)+len(w.Fields))
			for field, v := range current {
				doc[field] = v
			}
			for field, v := range w.Fields {
				raw, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("failed to encode field %s: %w", field, err)
				}
				doc[field] = raw
			}
			overlay[k] = doc
		case WriteDelete:
			overlay[k] = nil
		default:
			return fmt.Errorf("unknown write kind %d", w.Kind)
		}
	}

	for k, doc := range overlay {
		if doc == nil {
			delete(m.data[k.collection], k.id)
			continue
		}
		coll, ok := m.data[k.collection]
		if !ok {
			coll = make(map[string]map[string]json.RawMessage)
			m.data[k.collection] = coll
		}
		coll[k.id] = doc
	}
	return nil
}

// check evaluates a CheckOp against committed state. The caller holds the lock.
func (m *MemoryStore) check(w Write) error {
	doc, ok := m.data[w.Collection][w.ID]
	if !ok {
		return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrPreconditionFailed)
	}
	for field, v := range w.Fields {
		want, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode field %s: %w", field, err)
		}
		if !bytes.Equal(doc[field], want) {
			return fmt.Errorf("%s/%s: field %s changed: %w", w.Collection, w.ID, field, ErrPreconditionFailed)
		}
	}
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close(context.Context) error { return nil }

// Count reports the number of documents in a collection.
func (m *MemoryStore) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}
