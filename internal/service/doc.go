// Package service implements the business logic layer for the SmartWords API.
//
// SetService is the record mapper between the set store and the rest of the
// application: every document read from or written to the store passes
// through model.NewSet, so callers only ever see valid sets.
//
// # Store Interface
//
// The service defines the SetStore interface it needs; internal/repository
// provides the SurrealDB, MongoDB, SQLite and in-memory implementations.
//
//	svc := service.NewSetService(service.SetServiceConfig{Store: store, Logger: logger})
//	sets, err := svc.FindAll(ctx, "verbs")
//
// # Error Handling
//
//	var (
//	    ErrSetNotFound = errors.New("set not found")
//	    ErrCorruptSet  = errors.New("stored set is invalid")
//	)
//
// Validation failures of new input are returned as model validation errors.
// Store errors are returned unchanged.
package service
