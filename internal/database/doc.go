// Package database provides store connectivity for the SmartWords API.
//
// Two adapters live here:
//
//   - SurrealDB implements the Database interface (SurrealQL queries)
//   - MongoDB wraps a mongo-driver client bound to one database
//
// # Connection Management
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "smartwords",
//	    Database:  "main",
//	    User:      "root",
//	    Password:  "root",
//	}, logger)
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
//
// Adapters wrap driver errors with these sentinels so callers can use errors.Is.
package database
