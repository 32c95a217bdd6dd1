package order

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	List(ctx context.Context, filter *model.OrderListFilter) ([]model.OrderListItem, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status constant.OrderStatus) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status constant.PaymentStatus) (bool, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateTracking(ctx context.Context, id primitive.ObjectID, trackingNumber string) (bool, error)
	UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string) (bool, error)
}

type Mongo struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &Mongo{coll: db.Collection("orders")}
}

func (r *Mongo) Insert(ctx context.Context, order *model.Order) (*model.Order, error) {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return order, nil
}

func (r *Mongo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var order model.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns one admin page of orders with joined user display fields.
// Search matches the human orderId, recipient name and phone.
func (r *Mongo) List(ctx context.Context, filter *model.OrderListFilter) ([]model.OrderListItem, int64, error) {
	match := bson.M{}
	if filter.Status != "" {
		match["status"] = filter.Status
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		match["$or"] = bson.A{
			bson.M{"orderId": regex},
			bson.M{"shippingAddress.name": regex},
			bson.M{"shippingAddress.phone": regex},
		}
	}

	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: int64(filter.Limit)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"userName":  bson.M{"$arrayElemAt": bson.A{"$user.name", 0}},
			"userEmail": bson.M{"$arrayElemAt": bson.A{"$user.email", 0}},
		}}},
		{{Key: "$project", Value: bson.M{"user": 0}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]model.OrderListItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Mongo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status constant.OrderStatus) (bool, error) {
	return r.setField(ctx, id, "status", status)
}

func (r *Mongo) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status constant.PaymentStatus) (bool, error) {
	return r.setField(ctx, id, "paymentStatus", status)
}

// MarkPaid flips paymentStatus to paid and status to processing in one
// update. The pending guard in the filter makes concurrent confirmations
// settle on a single winner.
func (r *Mongo) MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "paymentStatus": constant.PaymentStatusPending},
		bson.M{"$set": bson.M{
			"paymentStatus": constant.PaymentStatusPaid,
			"status":        constant.OrderStatusProcessing,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *Mongo) UpdateTracking(ctx context.Context, id primitive.ObjectID, trackingNumber string) (bool, error) {
	return r.setField(ctx, id, "trackingNumber", trackingNumber)
}

func (r *Mongo) UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string) (bool, error) {
	return r.setField(ctx, id, "notes", notes)
}

func (r *Mongo) setField(ctx context.Context, id primitive.ObjectID, field string, value interface{}) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
