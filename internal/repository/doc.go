// Package repository implements the set stores of the SmartWords API.
//
// Every store exchanges raw model.SetDocument values and never validates
// them; validation happens in the service layer. Stores assign set ids, word
// ids and creation times on Insert.
//
// # Backends
//
//   - SetRepository: SurrealDB through database.Database, ids like "set:abc"
//   - MongoSetRepository: MongoDB collection "sets", ObjectID hex ids
//   - SQLiteSetRepository: JSON documents in a SQLite table, UUID ids
//   - MemorySetRepository: in-process slice, UUID ids
//
// OpenSetStore picks one by name.
//
// # Query Patterns
//
// Name filters are case-insensitive literal substrings. SurrealDB and MongoDB
// evaluate them server side (string::lowercase CONTAINS, escaped $regex); the
// SQLite and memory stores use model.NameMatches. Every backend agrees on
// ASCII names. Outside ASCII each folds case its own way: SurrealDB uses full
// Unicode lower-casing ("İ" becomes "i" plus a combining dot), MongoDB uses
// PCRE caseless matching, and the Go stores use simple per-rune mapping.
// Results are ordered by creation time, oldest first.
//
// # Example Usage
//
//	store, err := repository.OpenSetStore(ctx, repository.StoreConfig{Backend: "sqlite", SQLitePath: "data/sets.db"}, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	docs, err := store.Find(ctx, model.SetFilter{Name: "verbs"})
package repository
