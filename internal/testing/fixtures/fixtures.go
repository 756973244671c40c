// Package fixtures provides set test data for unit and integration tests.
//
// Usage:
//
//	doc := fixtures.SetDocument(fixtures.WithName("Spanish verbs"))
//	stored := fixtures.Seed(t, store, doc)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/forgo/smartwords/internal/model"
)

// Defaults used by the set fixtures
const (
	DefaultSetName        = "Test Set"
	DefaultSetDescription = "A test set"
)

// CreatedAt is the creation time given to fixture documents
var CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Inserter is the part of a set store used for seeding
type Inserter interface {
	Insert(ctx context.Context, doc model.SetDocument) (model.SetDocument, error)
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// DefaultWords returns the two words of the default fixture
func DefaultWords() []model.WordDocument {
	return []model.WordDocument{
		{ID: "1", Word: "test", Meaning: "A trial or experiment"},
		{ID: "2", Word: "example", Meaning: "A thing characteristic of its kind or illustrating a general rule."},
	}
}

// SetDocument builds a valid set document, then applies opts
func SetDocument(opts ...func(*model.SetDocument)) model.SetDocument {
	doc := model.SetDocument{
		ID:          "set:" + randomID(),
		Name:        DefaultSetName,
		Description: DefaultSetDescription,
		Words:       DefaultWords(),
		CreatedAt:   CreatedAt,
	}
	for _, fn := range opts {
		fn(&doc)
	}
	return doc
}

// WithName sets the document name
func WithName(name string) func(*model.SetDocument) {
	return func(d *model.SetDocument) { d.Name = name }
}

// WithDescription sets the document description
func WithDescription(description string) func(*model.SetDocument) {
	return func(d *model.SetDocument) { d.Description = description }
}

// WithWords replaces the document words
func WithWords(words ...model.WordDocument) func(*model.SetDocument) {
	return func(d *model.SetDocument) { d.Words = words }
}

// WithID sets the document id
func WithID(id string) func(*model.SetDocument) {
	return func(d *model.SetDocument) { d.ID = id }
}

// WithCreatedAt sets the document creation time
func WithCreatedAt(t time.Time) func(*model.SetDocument) {
	return func(d *model.SetDocument) { d.CreatedAt = t }
}

// TooLong returns a string of n+1 runes
func TooLong(n int) string {
	return strings.Repeat("x", n+1)
}

// CreateSetRequest builds a valid create request mirroring the default fixture
func CreateSetRequest(opts ...func(*model.CreateSetRequest)) model.CreateSetRequest {
	req := model.CreateSetRequest{
		Name:        DefaultSetName,
		Description: DefaultSetDescription,
	}
	for _, w := range DefaultWords() {
		req.Words = append(req.Words, model.CreateWordRequest{Word: w.Word, Meaning: w.Meaning})
	}
	for _, fn := range opts {
		fn(&req)
	}
	return req
}

// Seed inserts docs into store and returns what the store kept
func Seed(t *testing.T, store Inserter, docs ...model.SetDocument) []model.SetDocument {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out := make([]model.SetDocument, 0, len(docs))
	for _, doc := range docs {
		stored, err := store.Insert(ctx, doc)
		if err != nil {
			t.Fatalf("fixtures: failed to seed set %q: %v", doc.Name, err)
		}
		out = append(out, stored)
	}
	return out
}
