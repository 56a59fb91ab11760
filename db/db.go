package db

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	CategoriesCollection *mongo.Collection
	ProductsCollection   *mongo.Collection
	SettingsCollection   *mongo.Collection
	Client               *mongo.Client
)

// Init connects to MongoDB and binds the collections. Call once from main
// before serving.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "cakepointdb"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	CategoriesCollection = client.Database(dbName).Collection("categories")
	ProductsCollection = client.Database(dbName).Collection("products")
	SettingsCollection = client.Database(dbName).Collection("settings")
	return nil
}

// Close disconnects the client; used during graceful shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
