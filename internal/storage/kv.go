// Package storage persists the notification list and preferences across
// restarts. Data lives as JSON strings under two fixed keys in a durable
// key-value store; the adapter is lenient on load so corrupt or legacy data
// can never take the service down.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/agriswayam/go-notification-service/internal/shared/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// KV is the durable key-value contract the adapter writes through. Get
// returns ok=false when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryKV is an in-process KV used by tests and as a degraded fallback when
// no durable store is configured. Contents are lost on restart.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

const kvCollection = "kv_store"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoKV stores each key as a single document in the kv_store collection.
type MongoKV struct {
	client *mongodb.MongoClient
}

// NewMongoKV creates a Mongo-backed KV on the shared client.
func NewMongoKV(client *mongodb.MongoClient) *MongoKV {
	return &MongoKV{client: client}
}

// Get fetches the document for key.
func (m *MongoKV) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := m.client.Collection(kvCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

// Set upserts the document for key.
func (m *MongoKV) Set(ctx context.Context, key, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)

	_, err := m.client.Collection(kvCollection).UpdateOne(ctx, filter, update, opts)
	return err
}
