package mongoclient

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onestopfashion897-star/onestopfashion-backend/cmd/config"
)

var client *mongo.Client

// New initializes the Mongo client using provided configuration and verifies
// connectivity with a ping.
func New(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("unable to connect mongo at %s: %w", cfg.Mongo.URI, err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("unable to ping mongo at %s: %w", cfg.Mongo.URI, err)
	}

	client = c
	return nil
}

func Get() *mongo.Client {
	return client
}

// Database returns the configured application database.
func Database(cfg *config.Config) *mongo.Database {
	if client == nil {
		return nil
	}
	return client.Database(cfg.Mongo.Database)
}

func Close() error {
	if client == nil {
		return nil
	}
	return client.Disconnect(context.Background())
}
