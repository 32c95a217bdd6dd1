package coupon

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onestopfashion897-star/onestopfashion-backend/model"
)

type CouponRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*model.Coupon, error)
	Redeem(ctx context.Context, code string) (bool, error)
	Release(ctx context.Context, code string) (bool, error)
	Insert(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
}

type Mongo struct {
	coll *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) CouponRepository {
	return &Mongo{coll: db.Collection("coupons")}
}

func activeFilter(code string, now time.Time) bson.M {
	return bson.M{
		"code":       strings.ToUpper(code),
		"active":     true,
		"validFrom":  bson.M{"$lte": now},
		"validUntil": bson.M{"$gte": now},
	}
}

// FindActiveByCode looks up a coupon that is active and inside its validity
// window at query time. Codes are stored upper-cased.
func (r *Mongo) FindActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	err := r.coll.FindOne(ctx, activeFilter(code, time.Now())).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Redeem increments usedCount with the usage-limit guard in the filter, so
// concurrent redemptions cannot exceed the limit. A zero usageLimit means
// unlimited. Returns false when the guard rejects the increment.
func (r *Mongo) Redeem(ctx context.Context, code string) (bool, error) {
	filter := activeFilter(code, time.Now())
	filter["$or"] = bson.A{
		bson.M{"usageLimit": 0},
		bson.M{"$expr": bson.M{"$lt": bson.A{"$usedCount", "$usageLimit"}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"usedCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Release hands back one consumed usage. The usedCount guard keeps the
// counter from going negative when compensations race.
func (r *Mongo) Release(ctx context.Context, code string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"code": strings.ToUpper(code), "usedCount": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"usedCount": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *Mongo) Insert(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	now := time.Now()
	coupon.Code = strings.ToUpper(coupon.Code)
	coupon.CreatedAt = now
	coupon.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, coupon)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid
	}
	return coupon, nil
}

func (r *Mongo) List(ctx context.Context) ([]model.Coupon, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]model.Coupon, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
