// Package testdb provides SurrealDB test utilities for the SmartWords API.
//
// Tests using it are skipped unless TEST_DB_HOST points at a running
// SurrealDB (TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD default to
// 8000, root and root).
//
// # Isolation
//
// Each TestDB connects in its own namespace, removed by Close:
//
//	tdb := testdb.New(t)
//	defer tdb.Close()
//
// Reset clears the set table between subtests.
package testdb
