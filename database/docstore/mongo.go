package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore maps each collection to a MongoDB collection and each document ID to _id.
// Batch needs a replica set or sharded cluster, since it runs inside a transaction.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

type mongoSnapshot struct {
	id  string
	raw bson.Raw
}

func (s mongoSnapshot) ID() string { return s.id }

func (s mongoSnapshot) DataTo(v any) error {
	return bson.Unmarshal(s.raw, v)
}

func toMongoDocument(id string, data any) (bson.M, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc["_id"] = id
	return doc, nil
}

func toMongoFilter(filters []Filter) bson.M {
	filter := bson.M{}
	for _, f := range filters {
		filter[f.Field] = f.Value
	}
	return filter
}

func mapMongoError(collection, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
	}
	return fmt.Errorf("%s/%s: %w", collection, id, err)
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		return nil, mapMongoError(collection, id, err)
	}
	return mongoSnapshot{id: id, raw: raw}, nil
}

func (s *MongoStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.db.Collection(collection).Find(ctx, toMongoFilter(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var out []Snapshot
	for cursor.Next(ctx) {
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)
		id, ok := raw.Lookup("_id").StringValueOK()
		if !ok {
			continue
		}
		out = append(out, mongoSnapshot{id: id, raw: raw})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return out, nil
}

func (s *MongoStore) Create(ctx context.Context, collection, id string, data any) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return s.apply(ctx, CreateOp(collection, id, data))
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, data any) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return s.apply(ctx, SetOp(collection, id, data))
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return s.apply(ctx, UpdateOp(collection, id, fields))
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return s.apply(ctx, DeleteOp(collection, id))
}

// apply runs one write; inside Batch ctx is the transaction's session context.
func (s *MongoStore) apply(ctx context.Context, w Write) error {
	coll := s.db.Collection(w.Collection)
	switch w.Kind {
	case WriteCreate:
		doc, err := toMongoDocument(w.ID, w.Data)
		if err != nil {
			return err
		}
		_, err = coll.InsertOne(ctx, doc)
		return mapMongoError(w.Collection, w.ID, err)
	case WriteSet:
		doc, err := toMongoDocument(w.ID, w.Data)
		if err != nil {
			return err
		}
		_, err = coll.ReplaceOne(ctx, bson.M{"_id": w.ID}, doc, options.Replace().SetUpsert(true))
		return mapMongoError(w.Collection, w.ID, err)
	case WriteUpdate:
		result, err := coll.UpdateOne(ctx, bson.M{"_id": w.ID}, bson.M{"$set": bson.M(w.Fields)})
		if err != nil {
			return mapMongoError(w.Collection, w.ID, err)
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
		}
		return nil
	case WriteDelete:
		_, err := coll.DeleteOne(ctx, bson.M{"_id": w.ID})
		return mapMongoError(w.Collection, w.ID, err)
	case WriteCheck:
		filter := bson.M{"_id": w.ID}
		for field, v := range w.Fields {
			filter[field] = v
		}
		err := coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrPreconditionFailed)
		}
		return mapMongoError(w.Collection, w.ID, err)
	default:
		return fmt.Errorf("unknown write kind %d", w.Kind)
	}
}

// Batch runs the writes in a multi-document transaction. A concurrent transaction touching the same
// documents makes the driver retry the whole function, checks included.
func (s *MongoStore) Batch(ctx context.Context, writes []Write) error {
	ctx, cancel := newContext(ctx, 15*time.Second)
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	// Checks run first so they see the state before this batch; a retried transaction re-runs them.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, w := range writes {
			if w.Kind != WriteCheck {
				continue
			}
			if err := s.apply(sc, w); err != nil {
				return nil, err
			}
		}
		for _, w := range writes {
			if w.Kind == WriteCheck {
				continue
			}
			if err := s.apply(sc, w); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes creates a non-unique ascending index on every listed field of a collection.
func (s *MongoStore) EnsureIndexes(ctx context.Context, collection string, fields ...string) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	indexModels := make([]mongo.IndexModel, 0, len(fields))
	for _, field := range fields {
		indexModels = append(indexModels, mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}})
	}
	if len(indexModels) == 0 {
		return nil
	}
	if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := newContext(ctx, 3*time.Second)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
