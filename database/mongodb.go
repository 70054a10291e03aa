package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and returns a handle to the application database.
func Connect(uri string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("🗄️ Connected to MongoDB!")
	return client.Database("ecom"), nil
}

// EnsureIndexes creates the unique indexes the stores rely on. Uniqueness of
// emails, phone numbers and product codes is enforced here rather than by a
// find-then-insert check in the handlers.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phonenumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("user").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	productIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "ProductCode", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("Product").Indexes().CreateOne(ctx, productIndex); err != nil {
		return err
	}
	return nil
}
