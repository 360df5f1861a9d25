package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wichananm65/page-flow-backend/internal/checkout"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/mongodb"
)

type itemDocument struct {
	BookID    string               `bson:"bookId"`
	Title     string               `bson:"title"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unitPrice"`
}

type orderDocument struct {
	ID        string                `bson:"_id"`
	Customer  checkout.CustomerInfo `bson:"customer"`
	Items     []itemDocument        `bson:"items"`
	Total     primitive.Decimal128  `bson:"total"`
	Status    string                `bson:"status"`
	Version   int                   `bson:"version"`
	CreatedAt time.Time             `bson:"createdAt"`
	UpdatedAt time.Time             `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

func toDocument(o Order) (orderDocument, error) {
	total, err := toDecimal128(o.Total)
	if err != nil {
		return orderDocument{}, err
	}
	items := make([]itemDocument, len(o.Items))
	for i, it := range o.Items {
		price, err := toDecimal128(it.UnitPrice)
		if err != nil {
			return orderDocument{}, err
		}
		items[i] = itemDocument{BookID: it.BookID, Title: it.Title, Quantity: it.Quantity, UnitPrice: price}
	}
	return orderDocument{
		ID:        o.ID,
		Customer:  o.Customer,
		Items:     items,
		Total:     total,
		Status:    string(o.Status),
		Version:   o.Version,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func (d orderDocument) toOrder() (Order, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return Order{}, err
	}
	items := make([]Item, len(d.Items))
	for i, it := range d.Items {
		price, err := fromDecimal128(it.UnitPrice)
		if err != nil {
			return Order{}, err
		}
		items[i] = Item{BookID: it.BookID, Title: it.Title, Quantity: it.Quantity, UnitPrice: price}
	}
	return Order{
		ID:        d.ID,
		Customer:  d.Customer,
		Items:     items,
		Total:     total,
		Status:    Status(d.Status),
		Version:   d.Version,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.OrdersCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, o Order) (Order, error) {
	doc, err := toDocument(o)
	if err != nil {
		return Order{}, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return Order{}, mongodb.Translate(err, "order already exists")
	}
	return o, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Order, error) {
	var doc orderDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, mongodb.Translate(err, "")
	}
	return doc.toOrder()
}

func (r *MongoRepository) List(ctx context.Context, statuses []Status) ([]Order, error) {
	filter := bson.M{}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		filter["status"] = bson.M{"$in": names}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mongodb.Translate(err, "")
	}
	defer cur.Close(ctx)

	orders := make([]Order, 0)
	for cur.Next(ctx) {
		var doc orderDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		o, err := doc.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, mongodb.Translate(cur.Err(), "")
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, from Status, version int, to Status, at time.Time) (Order, error) {
	filter := bson.M{"_id": id, "status": string(from), "version": version}
	update := bson.M{
		"$set": bson.M{"status": string(to), "updatedAt": at},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return Order{}, getErr
		}
		return Order{}, ErrStale
	}
	if err != nil {
		return Order{}, mongodb.Translate(err, "")
	}
	return doc.toOrder()
}
