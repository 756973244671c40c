package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSetDocument() SetDocument {
	return SetDocument{
		ID:          "1234",
		Name:        "Test Set",
		Description: "A test set",
		CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Words: []WordDocument{
			{ID: "1", Word: "test", Meaning: "A trial or experiment"},
			{ID: "2", Word: "example", Meaning: "A thing characteristic of its kind or illustrating a general rule."},
		},
	}
}

func TestNewSet_ValidDocument_KeepsFields(t *testing.T) {
	doc := defaultSetDocument()

	set, err := NewSet(doc)
	require.NoError(t, err)

	assert.Equal(t, "1234", set.ID())
	assert.Equal(t, "Test Set", set.Name())
	assert.Equal(t, "A test set", set.Description())
	assert.Equal(t, doc.CreatedAt, set.CreatedAt())
	assert.Equal(t, []Word{
		{ID: "1", Word: "test", Meaning: "A trial or experiment"},
		{ID: "2", Word: "example", Meaning: "A thing characteristic of its kind or illustrating a general rule."},
	}, set.Words())
	assert.Equal(t, doc, set.Document())
}

func TestNewSet_DoesNotTrimOrNormalize(t *testing.T) {
	doc := defaultSetDocument()
	doc.Name = "  Mixed CASE  "
	doc.Words = []WordDocument{{ID: "w", Word: " Hola ", Meaning: "hello\n"}}

	set, err := NewSet(doc)
	require.NoError(t, err)
	assert.Equal(t, "  Mixed CASE  ", set.Name())
	assert.Equal(t, " Hola ", set.Words()[0].Word)
	assert.Equal(t, "hello\n", set.Words()[0].Meaning)
}

func TestNewSet_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SetDocument)
		field  string
		rule   error
	}{
		{"empty name", func(d *SetDocument) { d.Name = "" }, "name", ErrSetNameRequired},
		{"name of 101 characters", func(d *SetDocument) { d.Name = strings.Repeat("a", 101) }, "name", ErrSetNameTooLong},
		{"empty description", func(d *SetDocument) { d.Description = "" }, "description", ErrSetDescriptionRequired},
		{"description of 1001 characters", func(d *SetDocument) { d.Description = strings.Repeat("a", 1001) }, "description", ErrSetDescriptionTooLong},
		{"no words", func(d *SetDocument) { d.Words = []WordDocument{} }, "words", ErrSetWordsRequired},
		{"nil words", func(d *SetDocument) { d.Words = nil }, "words", ErrSetWordsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := defaultSetDocument()
			tt.mutate(&doc)

			set, err := NewSet(doc)
			require.Error(t, err)
			assert.Nil(t, set)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, tt.rule)
		})
	}
}

func TestNewSet_Boundaries(t *testing.T) {
	doc := defaultSetDocument()
	doc.Name = strings.Repeat("n", MaxSetNameLength)
	doc.Description = strings.Repeat("d", MaxSetDescriptionLength)
	doc.Words = doc.Words[:1]

	set, err := NewSet(doc)
	require.NoError(t, err)
	assert.Len(t, set.Words(), 1)
}

func TestNewSet_CountsCharactersNotBytes(t *testing.T) {
	doc := defaultSetDocument()
	doc.Name = strings.Repeat("ñ", MaxSetNameLength) // 200 bytes

	_, err := NewSet(doc)
	assert.NoError(t, err)

	doc.Name = strings.Repeat("ñ", MaxSetNameLength+1)
	_, err = NewSet(doc)
	assert.ErrorIs(t, err, ErrSetNameTooLong)
}

func TestNewSet_ReportsEveryViolation(t *testing.T) {
	_, err := NewSet(SetDocument{})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSetNameRequired)
	assert.ErrorIs(t, err, ErrSetDescriptionRequired)
	assert.ErrorIs(t, err, ErrSetWordsRequired)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	fields := FieldErrors(err)
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "description", fields[1].Field)
	assert.Equal(t, "words", fields[2].Field)
}

func TestFieldErrors_WrappedAndForeignErrors(t *testing.T) {
	_, err := NewSet(SetDocument{Name: "ok", Description: "ok"})
	wrapped := errors.Join(errors.New("other"), err)

	fields := FieldErrors(wrapped)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldError{Field: "words", Message: ErrSetWordsRequired.Error()}, fields[0])

	assert.Empty(t, FieldErrors(errors.New("storage down")))
	assert.Empty(t, FieldErrors(nil))
}

func TestSet_WordsReturnsCopy(t *testing.T) {
	set, err := NewSet(defaultSetDocument())
	require.NoError(t, err)

	words := set.Words()
	words[0].Word = "changed"

	assert.Equal(t, "test", set.Words()[0].Word)
}

func TestNewSet_DoesNotAliasInput(t *testing.T) {
	doc := defaultSetDocument()
	set, err := NewSet(doc)
	require.NoError(t, err)

	doc.Words[0].Meaning = "changed"

	assert.Equal(t, "A trial or experiment", set.Words()[0].Meaning)
}

func TestSet_MarshalJSON(t *testing.T) {
	set, err := NewSet(defaultSetDocument())
	require.NoError(t, err)

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "1234", decoded["id"])
	assert.Equal(t, "Test Set", decoded["name"])
	assert.Equal(t, "A test set", decoded["description"])
	assert.Equal(t, "2024-03-01T12:00:00Z", decoded["created_at"])
	words, ok := decoded["words"].([]interface{})
	require.True(t, ok)
	assert.Len(t, words, 2)
}

func TestNameMatches(t *testing.T) {
	tests := []struct {
		name, filter string
		want         bool
	}{
		{"Test Set", "", true},
		{"Test Set", "Test", true},
		{"Test Set", "test", true},
		{"Test Set", "T SET", false},
		{"Test Set", "st S", true},
		{"Test Set", "Non-existent name", false},
		{"a.b", ".", true},
		{"ab", ".", false},
		{"Ñandú", "ñan", true},
		{"École française", "ÉCOLE", true},
		{"İstanbul", "istanbul", true},
		{"Straße", "STRASSE", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NameMatches(tt.name, tt.filter), "NameMatches(%q, %q)", tt.name, tt.filter)
	}
}
