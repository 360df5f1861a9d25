package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/mongodb"
)

type sessionDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	IssuedAt  time.Time `bson:"issuedAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(mongodb.SessionsCollection)}
}

func (s *MongoStore) Save(ctx context.Context, sess Session) error {
	_, err := s.coll.InsertOne(ctx, sessionDocument{
		ID:        sess.ID,
		UserID:    sess.UserID,
		Email:     sess.Email,
		Role:      string(sess.Role),
		IssuedAt:  sess.IssuedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	return mongodb.Translate(err, "session already exists")
}

func (s *MongoStore) Get(ctx context.Context, id string) (Session, error) {
	var doc sessionDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, mongodb.Translate(err, "")
	}
	return Session{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Email:     doc.Email,
		Role:      Role(doc.Role),
		IssuedAt:  doc.IssuedAt.UTC(),
		ExpiresAt: doc.ExpiresAt.UTC(),
	}, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongodb.Translate(err, "")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
