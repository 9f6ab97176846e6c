// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Tests are skipped unless TEST_DB_HOST is set, so the default go test run
// needs no database.
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    result, err := tdb.DB.Query(tdb.Ctx(), "SELECT * FROM payment_audit", nil)
//	}
package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/database"
)

// TestDB is a database connection scoped to a unique namespace.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// getTestConfig returns database config from environment or defaults.
// ok is false when TEST_DB_HOST is not set.
func getTestConfig() (cfg database.Config, ok bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return database.Config{}, false
	}

	return database.Config{
		Host:     host,
		Port:     envOr("TEST_DB_PORT", "8000"),
		User:     envOr("TEST_DB_USER", "root"),
		Password: envOr("TEST_DB_PASSWORD", "root"),
	}, true
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// New connects to a fresh namespace. Each statement in setup runs before
// the database is handed to the test.
func New(t *testing.T, setup ...string) *TestDB {
	t.Helper()

	cfg, ok := getTestConfig()
	if !ok {
		t.Skip("testdb: TEST_DB_HOST not set, skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	for i, stmt := range setup {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			_ = db.Close()
			t.Fatalf("testdb: setup statement %d failed: %v", i+1, err)
		}
	}

	return &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}
}

// Close removes the test namespace and closes the connection.
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
}

// Ctx returns a context with a timeout suited to a single test operation.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustQuery executes a query and returns results, failing the test on error.
func (tdb *TestDB) MustQuery(query string, vars map[string]interface{}) []interface{} {
	tdb.t.Helper()
	results, err := tdb.DB.Query(tdb.Ctx(), query, vars)
	if err != nil {
		tdb.t.Fatalf("testdb: query failed: %v\nQuery: %s", err, query)
	}
	return results
}
