// Package database connects to SurrealDB for durable transaction audits.
//
// Only the audit store uses the database, and only when AUDIT_DB_ENABLED is
// set. The Database interface keeps the repository testable without a
// running server:
//
//	db := database.NewSurrealDB(database.Config{Host: "localhost", Port: "8000", ...})
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
// Errors wrap ErrConnection, ErrQuery or ErrNotFound; check them with errors.Is.
package database
