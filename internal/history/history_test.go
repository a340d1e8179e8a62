package history

import (
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestInsertAndList(t *testing.T) {
	db := testDB(t)

	for i, run := range []string{"r1", "r2", "r3"} {
		s := &Summary{
			RunID:        run,
			Mode:         "db",
			ChatName:     "Family",
			MessageCount: 10 + i,
			Model:        "gemini-2.5-flash",
			Summary:      "things happened",
			CreatedAt:    int64(1000 * (i + 1)),
		}
		if err := db.Insert(s); err != nil {
			t.Fatal(err)
		}
		if s.ID == 0 {
			t.Error("Insert did not set row id")
		}
	}

	got, err := db.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	// Newest first.
	if got[0].RunID != "r3" || got[1].RunID != "r2" {
		t.Errorf("order = %s,%s, want r3,r2", got[0].RunID, got[1].RunID)
	}
}

func TestInsertSetsCreatedAt(t *testing.T) {
	db := testDB(t)

	s := &Summary{RunID: "r1", Mode: "clipboard", Summary: "x"}
	if err := db.Insert(s); err != nil {
		t.Fatal(err)
	}
	if s.CreatedAt == 0 {
		t.Error("CreatedAt not defaulted")
	}
}

func TestGet(t *testing.T) {
	db := testDB(t)

	s := &Summary{RunID: "r1", Mode: "db", ChatName: "Family", Summary: "recap"}
	if err := db.Insert(s); err != nil {
		t.Fatal(err)
	}

	got, err := db.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Summary != "recap" {
		t.Errorf("got %v, want recap", got)
	}

	// Non-existent.
	got, err = db.Get(9999)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expected nil for missing row")
	}
}

func TestInsertDuplicateRunIDFails(t *testing.T) {
	db := testDB(t)

	if err := db.Insert(&Summary{RunID: "r1", Mode: "db", Summary: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := db.Insert(&Summary{RunID: "r1", Mode: "db", Summary: "b"}); err == nil {
		t.Error("duplicate run_id should fail")
	}
}
