package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medflow-hq/medflow/internal/repository/slots"
)

const slotCollection = "slots"

// slotDocument is the persisted shape of a slot: one document per named
// slot, the JSON payload stored as a string.
type slotDocument struct {
	ID        string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements slots.Store on top of MongoDB.
type Store struct {
	client *mongo.Client
	dbName string
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

func (s *Store) collection() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(slotCollection)
}

// Read fetches the named slot. Absent slots map to slots.ErrSlotNotFound.
func (s *Store) Read(ctx context.Context, slot string) ([]byte, error) {
	var doc slotDocument
	err := s.collection().FindOne(ctx, bson.M{"_id": slot}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, slots.ErrSlotNotFound
		}
		return nil, fmt.Errorf("find slot %s: %w", slot, err)
	}
	return []byte(doc.Value), nil
}

// Write replaces the named slot, creating it when missing.
func (s *Store) Write(ctx context.Context, slot string, value []byte) error {
	doc := slotDocument{ID: slot, Value: string(value), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection().ReplaceOne(ctx, bson.M{"_id": slot}, doc, opts); err != nil {
		return fmt.Errorf("upsert slot %s: %w", slot, err)
	}
	return nil
}

// Delete removes the named slot. Deleting an absent slot is not an error.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if _, err := s.collection().DeleteOne(ctx, bson.M{"_id": slot}); err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
