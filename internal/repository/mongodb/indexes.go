package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique slug index on events and the eventId lookup
// index on bookings. Existing indexes with the same keys and options are left as they are.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(EventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("slug_1").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create events slug index: %w", err)
	}
	_, err = db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetName("eventId_1"),
	})
	if err != nil {
		return fmt.Errorf("create bookings eventId index: %w", err)
	}
	return nil
}
