package book

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/mongodb"
)

type bookDocument struct {
	ID              string               `bson:"_id"`
	Title           string               `bson:"title"`
	Author          string               `bson:"author"`
	Description     string               `bson:"description"`
	ISBN            string               `bson:"isbn"`
	PublishedYear   int                  `bson:"publishedYear"`
	Genre           string               `bson:"genre"`
	AvailableCopies int                  `bson:"availableCopies"`
	ImageURL        string               `bson:"imageUrl"`
	Price           primitive.Decimal128 `bson:"price"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

func toDocument(b Book) (bookDocument, error) {
	price, err := primitive.ParseDecimal128(b.Price.String())
	if err != nil {
		return bookDocument{}, err
	}
	return bookDocument{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		ISBN:            b.ISBN,
		PublishedYear:   b.PublishedYear,
		Genre:           b.Genre,
		AvailableCopies: b.AvailableCopies,
		ImageURL:        b.ImageURL,
		Price:           price,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}, nil
}

func (d bookDocument) toBook() (Book, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return Book{}, err
	}
	return Book{
		ID:              d.ID,
		Title:           d.Title,
		Author:          d.Author,
		Description:     d.Description,
		ISBN:            d.ISBN,
		PublishedYear:   d.PublishedYear,
		Genre:           d.Genre,
		AvailableCopies: d.AvailableCopies,
		ImageURL:        d.ImageURL,
		Price:           price,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}, nil
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.BooksCollection)}
}

func (r *MongoRepository) List(ctx context.Context) ([]Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mongoErr(err)
	}
	defer cur.Close(ctx)

	out := make([]Book, 0)
	for cur.Next(ctx) {
		var doc bookDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		b, err := doc.toBook()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, mongoErr(cur.Err())
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Book, error) {
	var doc bookDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, mongoErr(err)
	}
	return doc.toBook()
}

func (r *MongoRepository) Create(ctx context.Context, b Book) (Book, error) {
	doc, err := toDocument(b)
	if err != nil {
		return Book{}, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return Book{}, mongoErr(err)
	}
	return b, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, b Book) (Book, error) {
	b.ID = id
	doc, err := toDocument(b)
	if err != nil {
		return Book{}, err
	}
	update := bson.M{"$set": bson.M{
		"title":           doc.Title,
		"author":          doc.Author,
		"description":     doc.Description,
		"isbn":            doc.ISBN,
		"publishedYear":   doc.PublishedYear,
		"genre":           doc.Genre,
		"availableCopies": doc.AvailableCopies,
		"imageUrl":        doc.ImageURL,
		"price":           doc.Price,
		"updatedAt":       doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated bookDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, mongoErr(err)
	}
	return updated.toBook()
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mongoErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrISBNExists
	}
	return mongodb.Translate(err, ErrISBNExists.Message)
}
