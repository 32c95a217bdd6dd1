package product

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onestopfashion897-star/onestopfashion-backend/model"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	List(ctx context.Context, page, perPage int) ([]model.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	DecrementSizeStock(ctx context.Context, id primitive.ObjectID, size string, quantity int) (bool, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
}

type Mongo struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &Mongo{coll: db.Collection("products")}
}

func (r *Mongo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var p model.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Mongo) List(ctx context.Context, page, perPage int) ([]model.Product, int64, error) {
	filter := bson.M{"active": true}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]model.Product, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Mongo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// DecrementSizeStock reduces the bucket matching size by quantity, clamped at
// zero, and recomputes the flat stock as the sum of all buckets. The whole
// mutation is a single pipeline update, so concurrent decrements serialize on
// the server and cannot lose writes. Returns false when the product has no
// bucket for the size.
func (r *Mongo) DecrementSizeStock(ctx context.Context, id primitive.ObjectID, size string, quantity int) (bool, error) {
	filter := bson.M{"_id": id, "sizeStocks.size": size}
	update := bson.A{
		bson.M{"$set": bson.M{
			"sizeStocks": bson.M{"$map": bson.M{
				"input": "$sizeStocks",
				"as":    "s",
				"in": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$$s.size", size}},
					bson.M{
						"size":  "$$s.size",
						"stock": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$$s.stock", quantity}}}},
					},
					"$$s",
				}},
			}},
		}},
		bson.M{"$set": bson.M{
			"stock":     bson.M{"$sum": "$sizeStocks.stock"},
			"updatedAt": "$$NOW",
		}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// DecrementStock reduces the flat stock counter by quantity, clamped at zero,
// as one atomic pipeline update.
func (r *Mongo) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	update := bson.A{
		bson.M{"$set": bson.M{
			"stock":     bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$stock", quantity}}}},
			"updatedAt": "$$NOW",
		}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
