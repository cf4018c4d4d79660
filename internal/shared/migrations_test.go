package shared

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
)

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func schemaObject(t *testing.T, db *sql.DB, kind, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", kind, name).Scan(&n); err != nil {
		t.Fatalf("failed to inspect schema: %v", err)
	}
	return n == 1
}

func insertEntry(db *sql.DB, id, key string) error {
	_, err := db.Exec(
		"INSERT INTO cache_entries (id, cache_key, value, created_at, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		id, key, `{"id":"1"}`,
	)
	return err
}

func TestMigrations(t *testing.T) {
	t.Run("Cache Entries Schema", func(t *testing.T) {
		db := migratedDB(t)

		for _, obj := range []struct{ kind, name string }{
			{"table", "schema_migrations"},
			{"table", "cache_entries"},
			{"index", "idx_cache_entries_updated_at"},
		} {
			if !schemaObject(t, db, obj.kind, obj.name) {
				t.Errorf("expected %s %s after migrations", obj.kind, obj.name)
			}
		}
	})

	t.Run("Cache Key Is Unique", func(t *testing.T) {
		db := migratedDB(t)
		key := "https://api.spotify.com/v1/tracks/1|Bearer abc"

		if err := insertEntry(db, "a", key); err != nil {
			t.Fatalf("first insert failed: %v", err)
		}

		err := insertEntry(db, "b", key)
		var sqliteErr sqlite3.Error
		if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
			t.Errorf("expected unique constraint violation, got %v", err)
		}

		if err := insertEntry(db, "c", key+"x"); err != nil {
			t.Errorf("expected distinct key to insert, got %v", err)
		}
	})

	t.Run("Rollback Drops Cache Entries", func(t *testing.T) {
		db := migratedDB(t)

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}
		if schemaObject(t, db, "table", "cache_entries") {
			t.Error("expected cache_entries to be dropped")
		}
		if schemaObject(t, db, "index", "idx_cache_entries_updated_at") {
			t.Error("expected updated_at index to be dropped")
		}

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatalf("failed to count applied migrations: %v", err)
		}
		if applied != 0 {
			t.Errorf("expected no applied migrations, got %d", applied)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error rolling back with nothing applied")
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to reapply migrations: %v", err)
		}
		if !schemaObject(t, db, "table", "cache_entries") {
			t.Error("expected cache_entries after reapplying")
		}
	})

	t.Run("Rerun Keeps Data", func(t *testing.T) {
		db := migratedDB(t)
		if err := insertEntry(db, "a", "k"); err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM cache_entries").Scan(&n); err != nil {
			t.Fatalf("failed to count entries: %v", err)
		}
		if n != 1 {
			t.Errorf("expected entry to survive rerun, got %d rows", n)
		}
	})

	t.Run("Embedded Files Pair Up", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}
		if len(migrations) == 0 || migrations[0].Version != 1 {
			t.Fatalf("expected migrations starting at version 1, got %+v", migrations)
		}
		for i, m := range migrations {
			if i > 0 && m.Version <= migrations[i-1].Version {
				t.Errorf("version %d out of order", m.Version)
			}
		}
	})

	t.Run("removeComments", func(t *testing.T) {
		got := removeComments("-- heading\nCREATE TABLE t (id TEXT) -- trailing\n\n")
		if got != "CREATE TABLE t (id TEXT)" {
			t.Errorf("unexpected statement %q", got)
		}
	})
}
