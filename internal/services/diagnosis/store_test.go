package diagnosis_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/cropsaarthi/backend/internal/model"
	"github.com/cropsaarthi/backend/internal/services/diagnosis"
)

func newTestStore(t *testing.T) *diagnosis.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "diag.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := diagnosis.NewStore(db, diagnosis.StubIdentifier{})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store
}

func TestStubIdentifierIsDeterministic(t *testing.T) {
	t.Parallel()
	ident := diagnosis.StubIdentifier{}

	image := []byte("leaf photo bytes")
	first, err := ident.Identify(image)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	second, _ := ident.Identify(image)
	if first.Disease != second.Disease || first.Confidence != second.Confidence {
		t.Fatalf("same image must yield same identification: %+v vs %+v", first, second)
	}
	if first.Disease == "" || first.Treatment == "" {
		t.Fatalf("identification incomplete: %+v", first)
	}
}

func TestDiagnoseStoresUnsynced(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	d, err := store.Diagnose([]byte("photo"), "Thrissur")
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if d.ID == "" || d.Synced {
		t.Fatalf("new diagnosis must have an id and start unsynced: %+v", d)
	}

	pending, err := store.Unsynced()
	if err != nil || len(pending) != 1 {
		t.Fatalf("unsynced: %v (%d records)", err, len(pending))
	}

	if err := store.MarkSynced(d.ID); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, _ = store.Unsynced()
	if len(pending) != 0 {
		t.Fatalf("expected no pending records, got %d", len(pending))
	}

	got, ok, err := store.Get(d.ID)
	if err != nil || !ok || !got.Synced {
		t.Fatalf("get after sync: ok=%v err=%v rec=%+v", ok, err, got)
	}
}

func TestSyncAllDrainsPending(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	for _, img := range []string{"a", "b", "c"} {
		if _, err := store.Diagnose([]byte(img), ""); err != nil {
			t.Fatalf("diagnose %q: %v", img, err)
		}
	}

	n, err := store.SyncAll()
	if err != nil || n != 3 {
		t.Fatalf("sync all: n=%d err=%v", n, err)
	}
	n, _ = store.SyncAll()
	if n != 0 {
		t.Fatalf("second drain must be empty, got %d", n)
	}
}

type flakyUploader struct {
	failFor string
	sent    []string
}

func (u *flakyUploader) Upload(d model.Diagnosis) error {
	if d.Location == u.failFor {
		return errors.New("broker unavailable")
	}
	u.sent = append(u.sent, d.ID)
	return nil
}

func TestSyncAllKeepsFailedUploadsPending(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if _, err := store.Diagnose([]byte("a"), "ok"); err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	stuck, err := store.Diagnose([]byte("b"), "bad")
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}

	up := &flakyUploader{failFor: "bad"}
	store.SetUploader(up)

	n, err := store.SyncAll()
	if err != nil || n != 1 {
		t.Fatalf("sync all: n=%d err=%v", n, err)
	}
	if len(up.sent) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(up.sent))
	}

	pending, _ := store.Unsynced()
	if len(pending) != 1 || pending[0].ID != stuck.ID {
		t.Fatalf("failed upload must stay pending: %+v", pending)
	}

	// Next reconnect retries the stuck record.
	up.failFor = ""
	n, err = store.SyncAll()
	if err != nil || n != 1 {
		t.Fatalf("retry drain: n=%d err=%v", n, err)
	}
	if pending, _ := store.Unsynced(); len(pending) != 0 {
		t.Fatalf("expected no pending records, got %d", len(pending))
	}
}
