package reports

import (
	"context"
	"errors"

	"skywatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Directory resolves user ids to display details (name, email) for
// attaching to single-report responses. Returns (nil, nil) when the
// user does not exist.
type Directory interface {
	Lookup(ctx context.Context, id primitive.ObjectID) (*models.UserRef, error)
}

// MongoDirectory looks users up in the "users" collection.
type MongoDirectory struct {
	c *mongo.Collection
}

func NewMongoDirectory(c *mongo.Collection) *MongoDirectory { return &MongoDirectory{c: c} }

func (d *MongoDirectory) Lookup(ctx context.Context, id primitive.ObjectID) (*models.UserRef, error) {
	var ref models.UserRef
	err := d.c.FindOne(ctx,
		bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"name": 1, "email": 1}),
	).Decode(&ref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
