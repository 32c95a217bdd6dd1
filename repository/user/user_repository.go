package user

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/onestopfashion897-star/onestopfashion-backend/model"
)

type UserRepository interface {
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	Create(ctx context.Context, user *model.UserEntity) (*model.UserEntity, error)
}

type Mongo struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &Mongo{coll: db.Collection("users")}
}

// Get returns the first user matching the filter, or nil when none matches.
func (r *Mongo) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := bson.M{}
	if !filter.ID.IsZero() {
		query["_id"] = filter.ID
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	if filter.Phone != "" {
		query["phone"] = filter.Phone
	}

	var user model.UserEntity
	err := r.coll.FindOne(ctx, query).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Mongo) Create(ctx context.Context, user *model.UserEntity) (*model.UserEntity, error) {
	user.CreatedAt = time.Now()

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}
