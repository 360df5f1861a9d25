// Package mongodb connects to the document store and owns the collection
// names and indexes shared by the Mongo repositories.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

const (
	BooksCollection    = "books"
	CartsCollection    = "carts"
	OrdersCollection   = "orders"
	UsersCollection    = "users"
	SessionsCollection = "sessions"
)

// Connect dials uri and pings the primary before returning the database.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique indexes the store relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{BooksCollection, mongo.IndexModel{Keys: bson.D{{Key: "isbn", Value: 1}}, Options: unique}},
		{UsersCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{OrdersCollection, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}}}},
	}
	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

// Translate classifies a driver error. conflict is the client-facing message
// used when a unique index rejects the write.
func Translate(err error, conflict string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Wrap(apperror.KindConflict, conflict, err)
	}
	var selErr topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.As(err, &selErr) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(apperror.KindUnavailable, "mongo unavailable", err)
	}
	return err
}
