package docstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore maps collections and document IDs one-to-one onto Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

type firestoreSnapshot struct {
	doc *firestore.DocumentSnapshot
}

func (s firestoreSnapshot) ID() string { return s.doc.Ref.ID }

func (s firestoreSnapshot) DataTo(v any) error { return s.doc.DataTo(v) }

func mapFirestoreError(collection, id string, err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
	}
	return fmt.Errorf("%s/%s: %w", collection, id, err)
}

func toFirestoreUpdates(fields map[string]any) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return updates
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError(collection, id, err)
	}
	return firestoreSnapshot{doc: doc}, nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	out := make([]Snapshot, 0, len(docs))
	for _, doc := range docs {
		out = append(out, firestoreSnapshot{doc: doc})
	}
	return out, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection, id string, data any) error {
	_, err := s.client.Collection(collection).Doc(id).Create(ctx, data)
	return mapFirestoreError(collection, id, err)
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data any) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, data)
	return mapFirestoreError(collection, id, err)
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, toFirestoreUpdates(fields))
	return mapFirestoreError(collection, id, err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return mapFirestoreError(collection, id, err)
}

// Batch runs the writes in a transaction. A failed precondition (create on an existing
// document, update on a missing one) aborts the transaction and is reported as such.
func (s *FirestoreStore) Batch(ctx context.Context, writes []Write) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// Firestore wants every read before the first write.
		for _, w := range writes {
			if w.Kind == WriteCheck {
				if err := s.check(tx, w); err != nil {
					return err
				}
			}
		}
		for _, w := range writes {
			ref := s.client.Collection(w.Collection).Doc(w.ID)
			var err error
			switch w.Kind {
			case WriteCheck:
				// evaluated above
			case WriteCreate:
				err = tx.Create(ref, w.Data)
			case WriteSet:
				err = tx.Set(ref, w.Data)
			case WriteUpdate:
				err = tx.Update(ref, toFirestoreUpdates(w.Fields))
			case WriteDelete:
				err = tx.Delete(ref)
			default:
				err = fmt.Errorf("unknown write kind %d", w.Kind)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.AlreadyExists:
		return fmt.Errorf("batch: %w", ErrAlreadyExists)
	case codes.NotFound:
		return fmt.Errorf("batch: %w", ErrNotFound)
	}
	return fmt.Errorf("batch: %w", err)
}

func (s *FirestoreStore) check(tx *firestore.Transaction, w Write) error {
	doc, err := tx.Get(s.client.Collection(w.Collection).Doc(w.ID))
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrPreconditionFailed)
	}
	if err != nil {
		return err
	}
	for field, want := range w.Fields {
		got, err := doc.DataAt(field)
		if err != nil || !reflect.DeepEqual(got, want) {
			return fmt.Errorf("%s/%s: field %s changed: %w", w.Collection, w.ID, field, ErrPreconditionFailed)
		}
	}
	return nil
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close(context.Context) error {
	return s.client.Close()
}
