package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/smartwords/internal/database"
	"github.com/forgo/smartwords/internal/model"
)

const setTable = "set"

// SetRepository handles set data access on SurrealDB
type SetRepository struct {
	db database.Database
}

// NewSetRepository creates a new set repository
func NewSetRepository(db database.Database) *SetRepository {
	return &SetRepository{db: db}
}

// Find returns the stored set documents matching filter, oldest first
func (r *SetRepository) Find(ctx context.Context, filter model.SetFilter) ([]model.SetDocument, error) {
	var conditions []string
	vars := map[string]interface{}{}

	if filter.ID != "" {
		if !isSetRecordID(filter.ID) {
			return []model.SetDocument{}, nil
		}
		conditions = append(conditions, "id = type::record($id)")
		vars["id"] = filter.ID
	}
	if filter.Name != "" {
		conditions = append(conditions, "string::lowercase(name) CONTAINS string::lowercase($name)")
		vars["name"] = filter.Name
	}

	query := "SELECT * FROM set"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC"

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractQueryResults(result)
	docs := make([]model.SetDocument, 0, len(records))
	for _, rec := range records {
		doc, err := parseSetRecord(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Insert creates a set record; SurrealDB assigns the id and created_at
func (r *SetRepository) Insert(ctx context.Context, doc model.SetDocument) (model.SetDocument, error) {
	query := `
		CREATE set CONTENT {
			name: $name,
			description: $description,
			words: $words,
			created_at: time::now()
		}
	`

	words := assignWordIDs(doc.Words, newUUID)
	wordVars := make([]map[string]interface{}, len(words))
	for i, w := range words {
		wordVars[i] = map[string]interface{}{
			"id":      w.ID,
			"word":    w.Word,
			"meaning": w.Meaning,
		}
	}

	vars := map[string]interface{}{
		"name":        doc.Name,
		"description": doc.Description,
		"words":       wordVars,
	}

	created, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return model.SetDocument{}, err
	}
	return parseSetRecord(created)
}

// Delete removes a set record, reporting whether one existed
func (r *SetRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isSetRecordID(id) {
		return false, nil
	}

	query := `DELETE type::record($id) RETURN BEFORE`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return false, err
	}
	return len(extractQueryResults(result)) > 0, nil
}

// Ping checks the SurrealDB connection
func (r *SetRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close closes the underlying connection
func (r *SetRepository) Close() error {
	return r.db.Close()
}

func isSetRecordID(id string) bool {
	rest, ok := strings.CutPrefix(id, setTable+":")
	return ok && rest != ""
}

// parseSetRecord maps a SurrealDB record onto a raw set document. Missing or
// mistyped fields are left at their zero value for validation to reject; a
// words element that is not an object fails the whole record.
func parseSetRecord(record interface{}) (model.SetDocument, error) {
	data, ok := record.(map[string]interface{})
	if !ok {
		return model.SetDocument{}, errors.New("unexpected result format")
	}

	doc := model.SetDocument{
		ID:          convertSurrealID(data["id"]),
		Name:        getString(data, "name"),
		Description: getString(data, "description"),
		CreatedAt:   parseTime(data["created_at"]),
	}

	if raw, ok := data["words"].([]interface{}); ok {
		doc.Words = make([]model.WordDocument, 0, len(raw))
		for i, item := range raw {
			w, ok := item.(map[string]interface{})
			if !ok {
				return model.SetDocument{}, fmt.Errorf("%w: set %s: malformed word entry at index %d", database.ErrQuery, doc.ID, i)
			}
			doc.Words = append(doc.Words, model.WordDocument{
				ID:      getString(w, "id"),
				Word:    getString(w, "word"),
				Meaning: getString(w, "meaning"),
			})
		}
	}

	return doc, nil
}
