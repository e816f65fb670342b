package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the slice of the driver's collection API the handlers use.
// *mongo.Collection satisfies it; tests substitute an in-memory double.
type Collection interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter, update any, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
}

// Database hands out named collections.
type Database interface {
	Collection(name string) Collection
}

// Mongo is an explicitly owned connection handle. main connects it, injects
// it into the handlers, and disconnects it on shutdown; no package global.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Database = (*Mongo)(nil)

func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	m := &Mongo{client: client, db: client.Database(dbName)}
	if err := m.ensureIndexes(pingCtx); err != nil {
		return nil, err
	}

	logrus.WithField("database", dbName).Info("mongodb connected")
	return m, nil
}

func (m *Mongo) Collection(name string) Collection {
	return m.db.Collection(name)
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes sets up the constraints the storage layer owns. Email
// uniqueness lives here, not in handler logic.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
