package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/forgo/smartwords/internal/database"
	"github.com/forgo/smartwords/internal/model"
)

// Supported store backends
const (
	BackendSurrealDB = "surrealdb"
	BackendMongoDB   = "mongodb"
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"
)

// Backends lists every name OpenSetStore accepts
var Backends = []string{BackendSurrealDB, BackendMongoDB, BackendSQLite, BackendMemory}

// SetStore is a set document store owning its connection
type SetStore interface {
	Find(ctx context.Context, filter model.SetFilter) ([]model.SetDocument, error)
	Insert(ctx context.Context, doc model.SetDocument) (model.SetDocument, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// StoreConfig selects and configures a backend
type StoreConfig struct {
	Backend    string
	SurrealDB  database.Config
	MongoDB    database.MongoConfig
	SQLitePath string
}

// OpenSetStore connects the configured backend.
//
// Supported backends:
//
//	"surrealdb" - SurrealDB over websocket (default)
//	"mongodb"   - MongoDB collection "sets"
//	"sqlite"    - SQLite database file
//	"memory"    - in-memory (ephemeral, for testing)
func OpenSetStore(ctx context.Context, cfg StoreConfig, logger *zap.Logger) (SetStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case BackendSurrealDB, "":
		db := database.NewSurrealDB(cfg.SurrealDB, logger)
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		return NewSetRepository(db), nil
	case BackendMongoDB:
		db, err := database.NewMongoDB(ctx, cfg.MongoDB, logger)
		if err != nil {
			return nil, err
		}
		return NewMongoSetRepository(db), nil
	case BackendSQLite:
		repo, err := NewSQLiteSetRepository(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite set store opened", zap.String("path", cfg.SQLitePath))
		return repo, nil
	case BackendMemory:
		logger.Warn("using in-memory set store, data is lost on restart")
		return NewMemorySetRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: surrealdb, mongodb, sqlite, memory)", cfg.Backend)
	}
}
