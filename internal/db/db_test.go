package db_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/boxfit/reservas/internal/db"
)

// TestWALMode verifies that the DSN parameters in db.go enable WAL journal
// mode, the key sqlite setting for concurrent reads.
func TestWALMode(t *testing.T) {
	gdb, err := db.Open(filepath.Join(t.TempDir(), "wal_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	var mode string
	gdb.Raw("PRAGMA journal_mode").Scan(&mode)
	if mode != "wal" {
		t.Errorf("expected journal_mode=wal, got %q", mode)
	}
}

// TestOpen_CreatesIndexes verifies the reservation indexes that GORM does not
// auto-create from struct tags.
func TestOpen_CreatesIndexes(t *testing.T) {
	gdb, err := db.Open(filepath.Join(t.TempDir(), "idx_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}

	found := indexNames(t, sqlDB, "reservations")
	for _, want := range []string{"idx_res_user_class", "idx_res_class"} {
		if !found[want] {
			t.Errorf("index %q missing from reservations table; found: %v", want, found)
		}
	}
}

// TestOpen_DuplicateRowsAllowed documents that the (user_id, class_id) index
// is not unique: duplicate prevention lives in the reservation flow, not the
// schema.
func TestOpen_DuplicateRowsAllowed(t *testing.T) {
	gdb, err := db.Open(filepath.Join(t.TempDir(), "dup_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.Exec("INSERT INTO reservations (user_id, class_id, created_at) VALUES (1, 1, CURRENT_TIMESTAMP)").Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := gdb.Exec("INSERT INTO reservations (user_id, class_id, created_at) VALUES (1, 1, CURRENT_TIMESTAMP)").Error; err != nil {
		t.Errorf("schema rejected a duplicate; the engine is supposed to own that rule: %v", err)
	}
}

func indexNames(t *testing.T, sqlDB *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := sqlDB.Query("PRAGMA index_list(" + table + ")")
	if err != nil {
		t.Fatalf("PRAGMA index_list: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out[name] = true
	}
	return out
}
