package kvstore_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/cropsaarthi/backend/pkg/kvstore"
)

func newTestStore(t *testing.T) *kvstore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := kvstore.New(db)
	if err != nil {
		t.Fatalf("kvstore: %v", err)
	}
	return store
}

func TestSetGetOverwrite(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}

	if err := store.Set("greeting", "namaste"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := store.Get("greeting")
	if err != nil || !ok || v != "namaste" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := store.Set("greeting", "hello"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = store.Get("greeting")
	if v != "hello" {
		t.Fatalf("expected overwritten value, got %q", v)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Fatal("key must be gone after delete")
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("deleting absent key must not error: %v", err)
	}
}
