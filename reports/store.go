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

// Store persists reports. Lookups return (nil, nil) when no document
// matches; listing methods sort newest first by createdAt.
//
// SetStatus and SetAssignment each touch a disjoint field set, so
// concurrent calls on the same report never corrupt each other.
type Store interface {
	Create(ctx context.Context, r *models.Report) (*models.Report, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Report, error)
	FindAll(ctx context.Context) ([]models.Report, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ReportStatus) (*models.Report, error)
	SetAssignment(ctx context.Context, id primitive.ObjectID, a models.Assignment) (*models.Report, error)
}

// MongoStore is the Store over a Mongo "reports" collection.
type MongoStore struct {
	c *mongo.Collection
}

func NewMongoStore(c *mongo.Collection) *MongoStore { return &MongoStore{c: c} }

func (s *MongoStore) Create(ctx context.Context, r *models.Report) (*models.Report, error) {
	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return nil, err
	}
	r.ID = res.InsertedID.(primitive.ObjectID)
	return r, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var r models.Report
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Report, error) {
	return s.find(ctx, bson.M{"ownerId": ownerID})
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.Report, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]models.Report, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Report
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ReportStatus) (*models.Report, error) {
	return s.update(ctx, id, bson.M{"$set": bson.M{"status": status}})
}

func (s *MongoStore) SetAssignment(ctx context.Context, id primitive.ObjectID, a models.Assignment) (*models.Report, error) {
	return s.update(ctx, id, bson.M{"$set": bson.M{"assignment": a}})
}

func (s *MongoStore) update(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Report, error) {
	res := s.c.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var r models.Report
	err := res.Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
