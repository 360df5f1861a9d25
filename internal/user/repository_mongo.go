package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/mongodb"
	"github.com/wichananm65/page-flow-backend/internal/session"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	FirstName string    `bson:"firstName"`
	LastName  string    `bson:"lastName"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d userDocument) toUser() User {
	return User{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Password:  d.Password,
		Role:      session.Role(d.Role),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.UsersCollection)}
}

func (r *MongoRepository) List(ctx context.Context) ([]User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, mongodb.Translate(err, "")
	}
	defer cur.Close(ctx)

	users := make([]User, 0)
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, doc.toUser())
	}
	return users, mongodb.Translate(cur.Err(), "")
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, mongodb.Translate(err, "")
	}
	return doc.toUser(), nil
}

func (r *MongoRepository) Create(ctx context.Context, u User) (User, error) {
	_, err := r.coll.InsertOne(ctx, userDocument{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     normalizeEmail(u.Email),
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return User{}, ErrEmailExists
	}
	if err != nil {
		return User{}, mongodb.Translate(err, ErrEmailExists.Message)
	}
	return u, nil
}

func (r *MongoRepository) PasswordHashes(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"password": 1})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mongodb.Translate(err, "")
	}
	defer cur.Close(ctx)

	hashes := make([]string, 0)
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		hashes = append(hashes, doc.Password)
	}
	return hashes, mongodb.Translate(cur.Err(), "")
}
