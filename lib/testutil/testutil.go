package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"osrs-info/lib/sqliteutil"
	"osrs-info/lib/telemetry"
)

// SetupDB initializes test telemetry and opens an in-memory sqlite
// database with the given schema applied.
func SetupDB(t testing.TB, name, schema string) (*sql.DB, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", name))

	db, err := sqliteutil.OpenDB(schema, ":memory:")
	if err != nil {
		t.Fatal(err)
	}

	return db, func() {
		db.Close()
		cleanup()
	}
}
