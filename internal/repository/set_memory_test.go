package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/smartwords/internal/model"
)

func TestMemorySetRepository(t *testing.T) {
	runSetStoreSuite(t, func(t *testing.T) SetStore {
		return NewMemorySetRepository()
	})
}

func TestMemorySetRepository_FindByNonASCIIName(t *testing.T) {
	runSimpleFoldingCases(t, NewMemorySetRepository())
}

func TestMemorySetRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemorySetRepository()
	ctx := context.Background()

	stored, err := repo.Insert(ctx, sampleDocument("Test Set"))
	require.NoError(t, err)
	stored.Words[0].Word = "mutated"

	docs, err := repo.Find(ctx, model.SetFilter{})
	require.NoError(t, err)
	docs[0].Words[1].Word = "mutated too"

	again, err := repo.Find(ctx, model.SetFilter{})
	require.NoError(t, err)
	assert.Equal(t, "test", again[0].Words[0].Word)
	assert.Equal(t, "example", again[0].Words[1].Word)
}

func TestMemorySetRepository_PutKeepsDocumentAsGiven(t *testing.T) {
	repo := NewMemorySetRepository()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	repo.Put(model.SetDocument{ID: "late", Name: "late", CreatedAt: created.Add(time.Hour)})
	repo.Put(model.SetDocument{ID: "early", Name: "", CreatedAt: created})

	docs, err := repo.Find(context.Background(), model.SetFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "early", docs[0].ID)
	assert.Equal(t, "", docs[0].Name)
	assert.Nil(t, docs[0].Words)

	repo.Put(model.SetDocument{ID: "late", Name: "replaced", CreatedAt: created.Add(time.Hour)})
	docs, err = repo.Find(context.Background(), model.SetFilter{ID: "late"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "replaced", docs[0].Name)
}

func TestMemorySetRepository_HonoursCancellation(t *testing.T) {
	repo := NewMemorySetRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Find(ctx, model.SetFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}
