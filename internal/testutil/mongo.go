package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SetupTestMongo connects to a local mongod and returns the test database.
// Skips the test when no instance is reachable.
func SetupTestMongo(t *testing.T) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Skipf("test mongodb not available: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("test mongodb not available: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = client.Database("catering_test").Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return client.Database("catering_test")
}
