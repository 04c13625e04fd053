package main

import (
	"context"

	"skywatch/reports"
	"skywatch/uploads"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	cfg    Config
	mongo  *mongo.Client
	db     *mongo.Database
	users  *mongo.Collection
	engine *reports.Engine
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	app := &App{
		cfg:   cfg,
		mongo: client,
		db:    db,
		users: db.Collection("users"),
	}

	reportsCol := db.Collection("reports")

	// Indexes
	if _, err := app.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}
	if _, err := reportsCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return nil, err
	}

	uploader := uploads.New(cfg.ImageKitUploadURL, cfg.ImageKitPrivateKey, cfg.ImageKitFolder)
	app.engine = reports.NewEngine(
		reports.NewMongoStore(reportsCol),
		uploader,
		reports.NewMongoDirectory(app.users),
	)
	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
