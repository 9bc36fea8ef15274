package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")

	j, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Journal file was not created")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := j.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	j := newTestJournal(t)
	defer j.Close()
	r := NewRecorder(j)

	base := time.Date(2020, 1, 2, 9, 0, 0, 0, time.UTC)
	for i, action := range []string{"task.add", "task.status", "task.add"} {
		e := &Entry{Action: action, TaskID: i + 1, InputsHash: hashInputs(i), Outcome: "success", Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if err := j.Write(e); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	e, err := r.Record("task.delete", map[string]int{"id": 2}, "success", 2, "")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if e.ID == "" {
		t.Error("Entry ID should not be empty")
	}
	if len(e.InputsHash) != 64 {
		t.Errorf("Expected sha256 hex hash, got %q", e.InputsHash)
	}

	all, err := j.Recent(10, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(all))
	}
	if all[0].Action != "task.delete" {
		t.Errorf("Expected newest entry first, got %s", all[0].Action)
	}

	forTask, err := j.Recent(10, 2)
	if err != nil {
		t.Fatalf("Recent for task failed: %v", err)
	}
	if len(forTask) != 2 {
		t.Errorf("Expected 2 entries for task 2, got %d", len(forTask))
	}

	limited, _ := j.Recent(1, 0)
	if len(limited) != 1 {
		t.Errorf("Expected limit to apply, got %d", len(limited))
	}
}

func TestRecordWithoutTask(t *testing.T) {
	j := newTestJournal(t)
	defer j.Close()

	if _, err := NewRecorder(j).Record("notify.check", nil, "fired=0", 0, ""); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	entries, _ := j.Recent(5, 0)
	if len(entries) != 1 || entries[0].TaskID != 0 {
		t.Errorf("Expected one entry without task, got %+v", entries)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	e, err := r.Record("task.add", nil, "success", 1, "")
	if err != nil || e != nil {
		t.Errorf("Nil recorder should discard, got %v, %v", e, err)
	}
}

func TestHashInputsStable(t *testing.T) {
	a := hashInputs(map[string]string{"title": "x"})
	b := hashInputs(map[string]string{"title": "x"})
	if a != b {
		t.Error("Expected identical hashes for identical inputs")
	}
	if a == hashInputs(map[string]string{"title": "y"}) {
		t.Error("Expected different hashes for different inputs")
	}
}

func newTestJournal(t *testing.T) *Journal {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	return j
}
