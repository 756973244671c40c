// Package model defines domain entities and data structures for the SmartWords API.
//
// The model package contains the Set entity, its raw storage shape, request
// types and error definitions. Models are used across all layers of the application.
//
// # Sets
//
// A Set is a named, described, ordered list of word/meaning pairs. Sets are
// only built through NewSet, which validates the raw attributes:
//
//	set, err := model.NewSet(model.SetDocument{
//	    Name:        "Spanish verbs",
//	    Description: "Common irregular verbs",
//	    Words:       []model.WordDocument{{Word: "ser", Meaning: "to be"}},
//	})
//	var verr *model.ValidationError
//	if errors.As(err, &verr) {
//	    // reject the input
//	}
//
// # Validation Constants
//
//	const (
//	    MaxSetNameLength        = 100
//	    MaxSetDescriptionLength = 1000
//	)
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
