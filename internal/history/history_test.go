package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)

	first := Entry{DatasetID: "countries", DatasetName: "Countries", Source: "countries.json", Items: 249, Skipped: 2}
	second := Entry{DatasetID: "currencies", DatasetName: "Currencies", Source: "store:currencies", Items: 160, Skipped: 0}

	if err := s.Record(first); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Record(second); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].DatasetID != "currencies" || entries[1].DatasetID != "countries" {
		t.Errorf("order = %s, %s", entries[0].DatasetID, entries[1].DatasetID)
	}
	if entries[1].Items != 249 || entries[1].Skipped != 2 {
		t.Errorf("entry = %+v", entries[1])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should default to now")
	}
}

func TestListLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.Record(Entry{DatasetID: "d", DatasetName: "D", Source: "f", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := s.List(3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("len = %d, want 3", len(entries))
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	if err := s.Record(Entry{DatasetID: "d", DatasetName: "D", Source: "f"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d after clear", len(entries))
	}
}
