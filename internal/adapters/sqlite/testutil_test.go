// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/pkgconflict/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPackage inserts a test package and returns its ID.
func seedPackage(t *testing.T, db *sql.DB, id, name, status string, installed bool) string {
	t.Helper()
	if id == "" {
		id = "pkg-001"
	}
	if name == "" {
		name = "test-package"
	}
	if status == "" {
		status = "no-inst"
	}
	_, err := db.Exec("INSERT INTO packages (id, name, edition, status, installed) VALUES (?, ?, '1.0', ?, ?)", id, name, status, installed)
	if err != nil {
		t.Fatalf("failed to seed package: %v", err)
	}
	return id
}
