package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestGetMissing verifies an absent key is reported as absent, not an error.
func TestGetMissing(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "webfit.db"))

	v, ok, err := db.Get(context.Background(), WorkoutKey)
	if err != nil || ok || v != "" {
		t.Errorf("Get(missing) = %q, %v, %v; want \"\", false, nil", v, ok, err)
	}
}

// TestSetOverwrites verifies writes replace the whole value.
func TestSetOverwrites(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "webfit.db"))
	ctx := context.Background()

	if err := db.Set(ctx, WorkoutKey, `{"a":1}`); err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, WorkoutKey, `{"b":2}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.Get(ctx, WorkoutKey)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if v != `{"b":2}` {
		t.Errorf("value = %s, want {\"b\":2}", v)
	}
}

// TestReopenPersists verifies values survive closing the store and that
// migrations are idempotent on reopen.
func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "webfit.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db2 := openTestDB(t, path)
	v, ok, err := db2.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestInMemory(t *testing.T) {
	db := openTestDB(t, ":memory:")
	ctx := context.Background()
	if err := db.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := db.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}
