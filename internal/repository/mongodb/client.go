// Package mongodb stores events and bookings in MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Collection names, matching the names used by the web app.
const (
	EventsCollection   = "events"
	BookingsCollection = "bookings"
)

// Client is a connected MongoDB client bound to one database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient wraps an already connected client.
func NewClient(client *mongo.Client, dbName string) *Client {
	return &Client{client: client, db: client.Database(dbName)}
}

// Database returns the bound database.
func (c *Client) Database() *mongo.Database { return c.db }

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// ClientOptions returns the connection options for uri: retryable writes, a bounded
// server selection and a majority, journaled write concern.
func ClientOptions(uri string, serverSelectionTimeout time.Duration) *options.ClientOptions {
	journaled := true
	return options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetRetryWrites(true).
		SetWriteConcern(&writeconcern.WriteConcern{W: "majority", Journal: &journaled})
}

// Dialer returns a dial function for database.Manager. The driver connects lazily, so
// the dial pings the primary: an unreachable deployment fails here instead of on the
// first write.
func Dialer(uri, dbName string, serverSelectionTimeout time.Duration) func(ctx context.Context) (*Client, error) {
	return func(ctx context.Context) (*Client, error) {
		client, err := mongo.Connect(ctx, ClientOptions(uri, serverSelectionTimeout))
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		c := NewClient(client, dbName)
		if err := EnsureIndexes(ctx, c.db); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
		return c, nil
	}
}
