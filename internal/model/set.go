package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Business constraints
const (
	MaxSetNameLength        = 100
	MaxSetDescriptionLength = 1000
)

// Set validation errors. Each rule has its own sentinel so callers can
// match them with errors.Is through a ValidationError.
var (
	ErrSetNameRequired        = errors.New("set name is required")
	ErrSetNameTooLong         = errors.New("set name exceeds maximum length")
	ErrSetDescriptionRequired = errors.New("set description is required")
	ErrSetDescriptionTooLong  = errors.New("set description exceeds maximum length")
	ErrSetWordsRequired       = errors.New("set must contain at least one word")
)

// ValidationError reports a single violated rule on a single field
type ValidationError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

// Unwrap returns the violated rule
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// WordDocument is a word/meaning pair as stored inside a set document
type WordDocument struct {
	ID      string `json:"id" bson:"_id"`
	Word    string `json:"word" bson:"word"`
	Meaning string `json:"meaning" bson:"meaning"`
}

// SetDocument is the raw, unvalidated shape exchanged with the set store.
type SetDocument struct {
	ID          string         `json:"id" bson:"-"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description" bson:"description"`
	Words       []WordDocument `json:"words" bson:"words"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}

// SetFilter narrows a store lookup. The zero value selects every set.
type SetFilter struct {
	// Name matches sets whose name contains it, ignoring case
	Name string
	// ID matches a single set exactly
	ID string
}

// Word is an entry of a Set. It has no identity outside its Set.
type Word struct {
	ID      string `json:"id"`
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Set is a validated study set. Values are only produced by NewSet, so a
// *Set in memory always satisfies the set invariants.
type Set struct {
	id          string
	name        string
	description string
	words       []Word
	createdAt   time.Time
}

// NewSet validates doc and returns the corresponding Set.
//
// Every rule is checked. On failure the error joins one *ValidationError per
// violated rule; errors.As finds the first one.
func NewSet(doc SetDocument) (*Set, error) {
	if err := ValidateSetDocument(doc); err != nil {
		return nil, err
	}

	words := make([]Word, len(doc.Words))
	for i, w := range doc.Words {
		words[i] = Word(w)
	}

	return &Set{
		id:          doc.ID,
		name:        doc.Name,
		description: doc.Description,
		words:       words,
		createdAt:   doc.CreatedAt,
	}, nil
}

// ValidateSetDocument checks doc against the set invariants without building a Set.
func ValidateSetDocument(doc SetDocument) error {
	var errs []error

	switch n := utf8.RuneCountInString(doc.Name); {
	case n == 0:
		errs = append(errs, &ValidationError{Field: "name", Err: ErrSetNameRequired})
	case n > MaxSetNameLength:
		errs = append(errs, &ValidationError{Field: "name", Err: ErrSetNameTooLong})
	}

	switch n := utf8.RuneCountInString(doc.Description); {
	case n == 0:
		errs = append(errs, &ValidationError{Field: "description", Err: ErrSetDescriptionRequired})
	case n > MaxSetDescriptionLength:
		errs = append(errs, &ValidationError{Field: "description", Err: ErrSetDescriptionTooLong})
	}

	if len(doc.Words) == 0 {
		errs = append(errs, &ValidationError{Field: "words", Err: ErrSetWordsRequired})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// FieldErrors flattens every ValidationError found in err.
func FieldErrors(err error) []FieldError {
	var out []FieldError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ve, ok := e.(*ValidationError); ok {
			out = append(out, FieldError{Field: ve.Field, Message: ve.Err.Error()})
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// NameMatches reports whether name contains filter, ignoring case.
// Case is folded rune by rune with Go's simple lower-case mapping, so
// "İ" folds to "i" and "ß" never matches "SS". An empty filter matches
// every name.
func NameMatches(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func (s *Set) ID() string           { return s.id }
func (s *Set) Name() string         { return s.name }
func (s *Set) Description() string  { return s.description }
func (s *Set) CreatedAt() time.Time { return s.createdAt }

// Words returns a copy of the set's words in insertion order
func (s *Set) Words() []Word {
	out := make([]Word, len(s.words))
	copy(out, s.words)
	return out
}

// Document returns the storage shape of the set
func (s *Set) Document() SetDocument {
	words := make([]WordDocument, len(s.words))
	for i, w := range s.words {
		words[i] = WordDocument(w)
	}
	return SetDocument{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		Words:       words,
		CreatedAt:   s.createdAt,
	}
}

type setJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Words       []Word    `json:"words"`
	CreatedAt   time.Time `json:"created_at"`
}

// MarshalJSON encodes the set as an API response object
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		Words:       s.words,
		CreatedAt:   s.createdAt,
	})
}

// CreateSetRequest represents a request to create a set
type CreateSetRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Words       []CreateWordRequest `json:"words"`
}

// CreateWordRequest represents a word inside a CreateSetRequest
type CreateWordRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}
