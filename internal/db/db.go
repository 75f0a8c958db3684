package db

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewClient builds a MongoDB client for uri. The driver connects lazily, so
// this only fails on a malformed URI or options.
func NewClient(uri string, connectTimeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("employee-management").
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)
	return mongo.Connect(context.Background(), opts)
}

// Ping checks that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

// Probe pings once in the background and logs the outcome; onReady runs only
// after a successful ping. Startup does not wait for it and nothing retries.
func Probe(client *mongo.Client, timeout time.Duration, logger *slog.Logger, onReady func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := Ping(ctx, client); err != nil {
			logger.Error("MongoDB connection error", "error", err)
			return
		}
		logger.Info("MongoDB connected")

		if onReady == nil {
			return
		}
		if err := onReady(ctx); err != nil {
			logger.Error("MongoDB setup failed", "error", err)
		}
	}()
}

// Pinger adapts a client to the health check.
type Pinger struct {
	Client *mongo.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	return Ping(ctx, p.Client)
}
