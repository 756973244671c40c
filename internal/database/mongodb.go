package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoConfig holds MongoDB adapter settings
type MongoConfig struct {
	URI              string
	Database         string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

// MongoDB provides MongoDB connectivity
type MongoDB struct {
	client   *mongo.Client
	database string
	logger   *zap.Logger
	timeout  time.Duration
	mu       sync.RWMutex
	closed   bool
}

// NewMongoDB connects to MongoDB and verifies the connection with a ping.
// It does not create collections or indexes.
func NewMongoDB(ctx context.Context, cfg MongoConfig, logger *zap.Logger) (*MongoDB, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: mongodb URI is required", ErrConnection)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("%w: mongodb database is required", ErrConnection)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping failed: %v", ErrConnection, err)
	}

	logger.Info("MongoDB connection established", zap.String("database", cfg.Database))
	return &MongoDB{
		client:   client,
		database: cfg.Database,
		logger:   logger,
		timeout:  cfg.OperationTimeout,
	}, nil
}

// Collection returns a handle to the named collection
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

// Ping checks the connection against the primary
func (m *MongoDB) Ping(ctx context.Context) error {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return fmt.Errorf("%w: mongodb adapter is closed", ErrConnection)
	}

	ctx, cancel := m.WithOperationTimeout(ctx)
	defer cancel()
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Close disconnects the client. Calling it more than once is a no-op.
func (m *MongoDB) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close mongodb connection: %w", err)
	}
	return nil
}

// WithOperationTimeout bounds ctx by the adapter operation timeout unless the
// caller already set a deadline.
func (m *MongoDB) WithOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, m.timeout)
}
