package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/forgo/smartwords/internal/database"
	"github.com/forgo/smartwords/internal/model"
)

// SQLiteSetRepository stores each set as a JSON document in a single table.
//
//	sets(id, created_at, doc)  PRIMARY KEY (id)
type SQLiteSetRepository struct {
	mu sync.RWMutex
	db *sql.DB
}

// sqliteSet is the JSON payload of the doc column
type sqliteSet struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Words       []model.WordDocument `json:"words"`
}

// NewSQLiteSetRepository opens (or creates) the database at path
func NewSQLiteSetRepository(path string) (*SQLiteSetRepository, error) {
	if path == "" {
		path = "smartwords.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("%w: create dirs: %v", database.ErrConnection, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", database.ErrConnection, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", database.ErrConnection, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sets (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		doc TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create sets table: %v", database.ErrConnection, err)
	}
	return &SQLiteSetRepository{db: db}, nil
}

// Find returns the stored set documents matching filter, oldest first.
// The name filter runs in Go because SQLite LOWER only folds ASCII.
func (r *SQLiteSetRepository) Find(ctx context.Context, filter model.SetFilter) ([]model.SetDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := "SELECT id, created_at, doc FROM sets"
	var args []interface{}
	if filter.ID != "" {
		query += " WHERE id = ?"
		args = append(args, filter.ID)
	}
	query += " ORDER BY created_at ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	docs := []model.SetDocument{}
	for rows.Next() {
		var (
			id        string
			createdAt int64
			raw       string
		)
		if err := rows.Scan(&id, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", database.ErrQuery, err)
		}

		var payload sqliteSet
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("%w: decode set %s: %v", database.ErrQuery, id, err)
		}
		if !model.NameMatches(payload.Name, filter.Name) {
			continue
		}

		docs = append(docs, model.SetDocument{
			ID:          id,
			Name:        payload.Name,
			Description: payload.Description,
			Words:       payload.Words,
			CreatedAt:   time.Unix(0, createdAt).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return docs, nil
}

// Insert stores doc under a new UUID
func (r *SQLiteSetRepository) Insert(ctx context.Context, doc model.SetDocument) (model.SetDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := model.SetDocument{
		ID:          newUUID(),
		Name:        doc.Name,
		Description: doc.Description,
		Words:       assignWordIDs(doc.Words, newUUID),
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(sqliteSet{
		Name:        stored.Name,
		Description: stored.Description,
		Words:       stored.Words,
	})
	if err != nil {
		return model.SetDocument{}, err
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO sets (id, created_at, doc) VALUES (?, ?, ?)",
		stored.ID, stored.CreatedAt.UnixNano(), string(payload),
	); err != nil {
		return model.SetDocument{}, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return stored, nil
}

// Delete removes a set, reporting whether one existed
func (r *SQLiteSetRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, "DELETE FROM sets WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return n > 0, nil
}

// Ping checks the database handle
func (r *SQLiteSetRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", database.ErrConnection, err)
	}
	return nil
}

// Close closes the database
func (r *SQLiteSetRepository) Close() error {
	return r.db.Close()
}
