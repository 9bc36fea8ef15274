package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fentz26/vibetasks/internal/audit"
	"github.com/fentz26/vibetasks/internal/models"
	"github.com/fentz26/vibetasks/internal/store"
)

// useTempFiles points the global flags at a fresh task file and a config
// with the journal disabled.
func useTempFiles(t *testing.T) string {
	t.Helper()
	return useTempConfig(t, "audit:\n  enabled: false\n")
}

func useTempConfig(t *testing.T, cfgYAML string) string {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	oldStore, oldConfig := storeFile, configFile
	storeFile = filepath.Join(dir, "tasks.json")
	configFile = cfgPath
	t.Cleanup(func() { storeFile, configFile = oldStore, oldConfig })
	t.Setenv("VIBETASKS_FILE", "")
	return storeFile
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{"#12", 12, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("parseID(%q) err = %v, want validation error", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseID(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestParseDue(t *testing.T) {
	got, err := parseDue("2026-10-14 18:30")
	if err != nil {
		t.Fatalf("parseDue failed: %v", err)
	}
	want := time.Date(2026, 10, 14, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	got, err = parseDue("2026-10-14T18:30:00Z")
	if err != nil || !got.Equal(time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)) {
		t.Errorf("RFC 3339 parse: %v, %v", got, err)
	}

	if got, err := parseDue(""); got != nil || err != nil {
		t.Errorf("Empty due should be nil, got %v, %v", got, err)
	}

	if _, err := parseDue("tomorrow"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestSplitLabels(t *testing.T) {
	got := splitLabels([]string{"Work,Study", " health ", ","})
	want := []string{"Work", "Study", "health"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMutateSavesOnSuccess(t *testing.T) {
	path := useTempFiles(t)

	err := mutate("task.add", nil, func(s *session) (outcome, error) {
		task, err := s.store.Add("write tests", "", models.PriorityHigh, nil)
		return outcome{taskID: task.ID}, err
	})
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}

	st, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("Expected 1 saved task, got %d", st.Len())
	}
}

func TestMutateDiscardsOnError(t *testing.T) {
	path := useTempFiles(t)

	err := mutate("task.add", nil, func(s *session) (outcome, error) {
		if _, err := s.store.Add("half done", "", models.PriorityLow, nil); err != nil {
			return outcome{}, err
		}
		_, err := s.store.Get(99)
		return outcome{taskID: 99}, err
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected not found, got %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Store should not be written after a failed command")
	}
}

func TestViewReleasesLock(t *testing.T) {
	useTempFiles(t)

	for i := 0; i < 2; i++ {
		if err := view(func(s *session) error { return nil }); err != nil {
			t.Fatalf("view %d failed: %v", i, err)
		}
	}
}

func TestMutateWritesJournal(t *testing.T) {
	journalPath := filepath.Join(t.TempDir(), "journal.db")
	useTempConfig(t, "audit:\n  enabled: true\n  path: "+journalPath+"\n")

	err := mutate("task.add", map[string]string{"title": "journaled"}, func(s *session) (outcome, error) {
		task, err := s.store.Add("journaled", "", models.PriorityLow, nil)
		if err != nil {
			return outcome{}, err
		}
		return outcome{taskID: task.ID, details: task.Title}, nil
	})
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}

	j, err := audit.Open(journalPath)
	if err != nil {
		t.Fatalf("Open journal failed: %v", err)
	}
	defer j.Close()

	entries, err := j.Recent(10, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "task.add" || entries[0].Outcome != "success" || entries[0].TaskID != 1 {
		t.Errorf("Unexpected journal entries: %+v", entries)
	}
}
