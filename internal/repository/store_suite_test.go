package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/smartwords/internal/model"
)

func sampleDocument(name string) model.SetDocument {
	return model.SetDocument{
		Name:        name,
		Description: "A test set",
		Words: []model.WordDocument{
			{Word: "test", Meaning: "A trial or experiment"},
			{ID: "fixed", Word: "example", Meaning: "A thing characteristic of its kind"},
		},
	}
}

// runSetStoreSuite checks the behaviour every SetStore backend shares.
// open must return an empty store.
func runSetStoreSuite(t *testing.T, open func(t *testing.T) SetStore) {
	t.Run("InsertAssignsIdentity", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()
		before := time.Now().Add(-time.Second)

		stored, err := store.Insert(ctx, sampleDocument("Test Set"))
		require.NoError(t, err)

		assert.NotEmpty(t, stored.ID)
		assert.Equal(t, "Test Set", stored.Name)
		assert.Equal(t, "A test set", stored.Description)
		assert.True(t, stored.CreatedAt.After(before), "created_at %v not after %v", stored.CreatedAt, before)
		require.Len(t, stored.Words, 2)
		assert.NotEmpty(t, stored.Words[0].ID)
		assert.Equal(t, "fixed", stored.Words[1].ID)
		assert.Equal(t, "test", stored.Words[0].Word)
		assert.Equal(t, "example", stored.Words[1].Word)
	})

	t.Run("FindReturnsStoredDocuments", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()

		stored, err := store.Insert(ctx, sampleDocument("Test Set"))
		require.NoError(t, err)

		docs, err := store.Find(ctx, model.SetFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, stored.ID, docs[0].ID)
		assert.Equal(t, stored.Words, docs[0].Words)
		assert.True(t, stored.CreatedAt.Equal(docs[0].CreatedAt))
	})

	t.Run("FindOnEmptyStore", func(t *testing.T) {
		store := open(t)

		docs, err := store.Find(context.Background(), model.SetFilter{Name: "anything"})
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("FindOrdersByCreationTime", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()

		for _, name := range []string{"first", "second", "third"} {
			_, err := store.Insert(ctx, sampleDocument(name))
			require.NoError(t, err)
			time.Sleep(5 * time.Millisecond)
		}

		docs, err := store.Find(ctx, model.SetFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "first", docs[0].Name)
		assert.Equal(t, "second", docs[1].Name)
		assert.Equal(t, "third", docs[2].Name)
	})

	t.Run("FindByNameIsCaseInsensitiveSubstring", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()

		for _, name := range []string{"Spanish Verbs", "French verbs", "German nouns", "a.b (x)"} {
			_, err := store.Insert(ctx, sampleDocument(name))
			require.NoError(t, err)
		}

		tests := []struct {
			filter string
			want   []string
		}{
			{"VERB", []string{"Spanish Verbs", "French verbs"}},
			{"nouns", []string{"German nouns"}},
			{"an", []string{"Spanish Verbs", "German nouns"}},
			{".", []string{"a.b (x)"}},
			{"(x)", []string{"a.b (x)"}},
			{"V.rbs", nil},
			{"Non-existent name", nil},
		}
		for _, tt := range tests {
			docs, err := store.Find(ctx, model.SetFilter{Name: tt.filter})
			require.NoError(t, err, tt.filter)
			var names []string
			for _, d := range docs {
				names = append(names, d.Name)
			}
			assert.ElementsMatch(t, tt.want, names, "filter %q", tt.filter)
		}
	})

	t.Run("FindByID", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()

		a, err := store.Insert(ctx, sampleDocument("a"))
		require.NoError(t, err)
		_, err = store.Insert(ctx, sampleDocument("b"))
		require.NoError(t, err)

		docs, err := store.Find(ctx, model.SetFilter{ID: a.ID})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "a", docs[0].Name)

		docs, err = store.Find(ctx, model.SetFilter{ID: a.ID, Name: "b"})
		require.NoError(t, err)
		assert.Empty(t, docs)

		docs, err = store.Find(ctx, model.SetFilter{ID: "no-such-id"})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Delete", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()

		stored, err := store.Insert(ctx, sampleDocument("Test Set"))
		require.NoError(t, err)

		deleted, err := store.Delete(ctx, stored.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.Delete(ctx, stored.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = store.Delete(ctx, "no-such-id")
		require.NoError(t, err)
		assert.False(t, deleted)

		docs, err := store.Find(ctx, model.SetFilter{})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, open(t).Ping(context.Background()))
	})
}

// runSimpleFoldingCases checks the non-ASCII name filtering of the stores
// that fold case with model.NameMatches
func runSimpleFoldingCases(t *testing.T, store SetStore) {
	t.Helper()
	ctx := context.Background()

	for _, name := range []string{"École française", "İstanbul trip", "Straße"} {
		_, err := store.Insert(ctx, sampleDocument(name))
		require.NoError(t, err)
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{"ÉCOLE", []string{"École française"}},
		{"FRANÇAISE", []string{"École française"}},
		{"istanbul", []string{"İstanbul trip"}},
		{"STRASSE", nil},
		{"straße", []string{"Straße"}},
	}
	for _, tt := range tests {
		docs, err := store.Find(ctx, model.SetFilter{Name: tt.filter})
		require.NoError(t, err, tt.filter)
		var names []string
		for _, d := range docs {
			names = append(names, d.Name)
		}
		assert.ElementsMatch(t, tt.want, names, "filter %q", tt.filter)
	}
}
