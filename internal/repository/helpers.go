package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/smartwords/internal/model"
)

// convertSurrealID renders a SurrealDB record id as "table:id"
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		// {"tb": "set", "id": "xxx"}
		tb, _ := v["tb"].(string)
		if tb == "" {
			tb, _ = v["Table"].(string)
		}
		idPart := v["id"]
		if idPart == nil {
			idPart = v["ID"]
		}
		if tb != "" && idPart != nil {
			return fmt.Sprintf("%s:%v", tb, idPart)
		}
	}

	if data, err := json.Marshal(id); err == nil {
		var recordID models.RecordID
		if err := json.Unmarshal(data, &recordID); err == nil && recordID.Table != "" {
			return fmt.Sprintf("%s:%v", recordID.Table, recordID.ID)
		}
	}

	return ""
}

// parseTime parses time from the formats SurrealDB and JSON decoding produce
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// extractQueryResults extracts the record array of the first statement
func extractQueryResults(result []interface{}) []interface{} {
	if len(result) == 0 {
		return nil
	}
	if first, ok := result[0].(map[string]interface{}); ok {
		if records, ok := first["result"].([]interface{}); ok {
			return records
		}
		return nil
	}
	return result
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// assignWordIDs fills empty word ids using newID and returns a fresh slice
func assignWordIDs(words []model.WordDocument, newID func() string) []model.WordDocument {
	out := make([]model.WordDocument, len(words))
	for i, w := range words {
		if w.ID == "" {
			w.ID = newID()
		}
		out[i] = w
	}
	return out
}

func newUUID() string {
	return uuid.NewString()
}

func copyDocument(doc model.SetDocument) model.SetDocument {
	if doc.Words != nil {
		words := make([]model.WordDocument, len(doc.Words))
		copy(words, doc.Words)
		doc.Words = words
	}
	return doc
}
