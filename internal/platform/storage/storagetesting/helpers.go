package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. Test is skipped when DATABASE_URL environment variable is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// CleanupData deletes all stored snapshots.
func CleanupData(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("DELETE FROM snapshot"); err != nil {
		t.Fatal("can't delete snapshots", err)
	}
}

// InsertSnapshotBody is a helper test function to insert raw snapshot body.
func InsertSnapshotBody(t *testing.T, db *sql.DB, name, body string) {
	t.Helper()

	_, err := db.Exec("INSERT INTO snapshot (name, body, updated_at) VALUES ($1, $2, NOW())", name, body)
	if err != nil {
		t.Fatal("can't insert snapshot", err)
	}
}
