// Package repository implements the data access layer for the payment API.
//
// Repositories accept a database.Database, so tests can substitute an
// in-memory fake. Queries are parameterized SurrealQL using $variable
// bindings; values are never interpolated into the query text.
//
// The only persisted entity is the transaction audit record, stored in the
// payment_audit table when AUDIT_DB_ENABLED is set.
package repository
