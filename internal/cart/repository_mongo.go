package cart

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

type lineItemDocument struct {
	BookID          string               `bson:"bookId"`
	Title           string               `bson:"title"`
	Author          string               `bson:"author"`
	Description     string               `bson:"description"`
	ISBN            string               `bson:"isbn"`
	AvailableCopies int                  `bson:"availableCopies"`
	UnitPrice       primitive.Decimal128 `bson:"unitPrice"`
	Quantity        int                  `bson:"quantity"`
	ImageURL        string               `bson:"imageUrl"`
}

type cartDocument struct {
	ID        string             `bson:"_id"`
	Items     []lineItemDocument `bson:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.CartsCollection)}
}

func (r *MongoRepository) Load(ctx context.Context, id string) (Cart, error) {
	var doc cartDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, mongodb.Translate(err, "")
	}

	c := Cart{ID: doc.ID, Items: make([]LineItem, len(doc.Items)), UpdatedAt: doc.UpdatedAt.UTC()}
	for i, it := range doc.Items {
		price, err := decimal.NewFromString(it.UnitPrice.String())
		if err != nil {
			return Cart{}, err
		}
		c.Items[i] = LineItem{
			BookID:          it.BookID,
			Title:           it.Title,
			Author:          it.Author,
			Description:     it.Description,
			ISBN:            it.ISBN,
			AvailableCopies: it.AvailableCopies,
			UnitPrice:       price,
			Quantity:        it.Quantity,
			ImageURL:        it.ImageURL,
		}
	}
	return c, nil
}

func (r *MongoRepository) Save(ctx context.Context, c Cart) error {
	doc := cartDocument{ID: c.ID, Items: make([]lineItemDocument, len(c.Items)), UpdatedAt: c.UpdatedAt}
	for i, it := range c.Items {
		price, err := primitive.ParseDecimal128(it.UnitPrice.String())
		if err != nil {
			return err
		}
		doc.Items[i] = lineItemDocument{
			BookID:          it.BookID,
			Title:           it.Title,
			Author:          it.Author,
			Description:     it.Description,
			ISBN:            it.ISBN,
			AvailableCopies: it.AvailableCopies,
			UnitPrice:       price,
			Quantity:        it.Quantity,
			ImageURL:        it.ImageURL,
		}
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, doc, options.Replace().SetUpsert(true))
	return mongodb.Translate(err, "")
}
