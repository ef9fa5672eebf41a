package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrationManager(db, "")

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second run: %v", err)
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		t.Fatalf("GetAppliedMigrations: %v", err)
	}
	if !applied[1] || !applied[2] {
		t.Errorf("expected migrations 1 and 2 applied, got %v", applied)
	}

	for _, table := range []string{"ranks", "routes", "journeys", "route_connections"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Errorf("table %s not usable: %v", table, err)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres}
	if got := pg.Rebind("SELECT * FROM t WHERE a = ? AND b = ?"); got != "SELECT * FROM t WHERE a = $1 AND b = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	lite := &DB{driver: DriverSQLite}
	if got := lite.Rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind should be a no-op, got %q", got)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := db.Transaction(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO items (id) VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("rolled back insert is visible: %d rows", n)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
