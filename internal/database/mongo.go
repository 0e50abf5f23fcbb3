package database

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/userboard/userboard/internal/logging"
)

// Pool owns the MongoDB client handle for the process.
//
// The client is established lazily on first use and reused across requests.
// Every Acquire pings the cached handle first; a failed ping discards it and
// the next call dials a fresh connection. Handlers receive the pool by
// injection instead of reaching for shared global state.
type Pool struct {
	uri      string
	database string
	logger   *logging.Logger

	mu     sync.Mutex
	client *mongo.Client
}

// NewPool creates a pool for the given connection string and database name.
// No connection is made until the first Acquire.
func NewPool(uri, database string, logger *logging.Logger) *Pool {
	return &Pool{
		uri:      uri,
		database: database,
		logger:   logger,
	}
}

// Acquire returns a live client, connecting or reconnecting as needed.
func (p *Pool) Acquire(ctx context.Context) (*mongo.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		if err := p.client.Ping(ctx, readpref.Primary()); err == nil {
			return p.client, nil
		}
		// Connection is stale, discard it and dial a new one
		p.logger.Warn("mongo connection is stale, reconnecting")
		_ = p.client.Disconnect(ctx)
		p.client = nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	p.client = client
	return p.client, nil
}

// Collection returns the named collection from the configured database.
func (p *Pool) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(p.database).Collection(name), nil
}

// Close disconnects the cached client if one exists.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}

	err := p.client.Disconnect(ctx)
	p.client = nil
	return err
}
