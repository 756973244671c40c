package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/forgo/smartwords/internal/model"
)

// MemorySetRepository keeps sets in memory. Data is lost on restart.
// Safe for concurrent use.
type MemorySetRepository struct {
	mu   sync.RWMutex
	sets []model.SetDocument
	now  func() time.Time
}

// NewMemorySetRepository creates an empty in-memory store
func NewMemorySetRepository() *MemorySetRepository {
	return &MemorySetRepository{now: time.Now}
}

// Find returns copies of the stored set documents matching filter, oldest first
func (r *MemorySetRepository) Find(ctx context.Context, filter model.SetFilter) ([]model.SetDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := []model.SetDocument{}
	for _, s := range r.sets {
		if filter.ID != "" && s.ID != filter.ID {
			continue
		}
		if !model.NameMatches(s.Name, filter.Name) {
			continue
		}
		docs = append(docs, copyDocument(s))
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

// Insert stores a copy of doc under a new UUID. The id, word ids and
// creation time of doc are replaced by store-assigned values, except word ids
// that are already set.
func (r *MemorySetRepository) Insert(_ context.Context, doc model.SetDocument) (model.SetDocument, error) {
	stored := model.SetDocument{
		ID:          newUUID(),
		Name:        doc.Name,
		Description: doc.Description,
		Words:       assignWordIDs(doc.Words, newUUID),
		CreatedAt:   r.now().UTC(),
	}

	r.mu.Lock()
	r.sets = append(r.sets, stored)
	r.mu.Unlock()

	return copyDocument(stored), nil
}

// Put stores doc as given, keeping its id and creation time. It is meant for
// seeding fixtures, including documents that would fail validation.
func (r *MemorySetRepository) Put(doc model.SetDocument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sets {
		if r.sets[i].ID == doc.ID {
			r.sets[i] = copyDocument(doc)
			return
		}
	}
	r.sets = append(r.sets, copyDocument(doc))
}

// Delete removes a set, reporting whether one existed
func (r *MemorySetRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sets {
		if r.sets[i].ID == id {
			r.sets = append(r.sets[:i], r.sets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Ping always succeeds
func (r *MemorySetRepository) Ping(context.Context) error { return nil }

// Close is a no-op
func (r *MemorySetRepository) Close() error { return nil }
