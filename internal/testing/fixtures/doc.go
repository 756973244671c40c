// Package fixtures provides set test data for the SmartWords API.
//
// # Documents
//
// SetDocument returns a valid raw document named "Test Set" with two words.
// Option functions customize it:
//
//	doc := fixtures.SetDocument(fixtures.WithName(fixtures.TooLong(model.MaxSetNameLength)))
//
// # Seeding
//
// Seed inserts documents through any store and fails the test on error:
//
//	stored := fixtures.Seed(t, store, fixtures.SetDocument())
package fixtures
