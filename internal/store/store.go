// Package store provides JSON file persistence for vibetasks.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fentz26/vibetasks/internal/models"
)

// FormatVersion is written to every saved document.
const FormatVersion = 1

// DefaultFileName is the store file created in the user's home directory.
const DefaultFileName = ".vibe_tasks.json"

// document is the on-disk layout.
type document struct {
	Version int            `json:"version"`
	LastID  int            `json:"last_id"`
	Tasks   []*models.Task `json:"tasks"`
}

// Store holds the task collection loaded from a single JSON file.
type Store struct {
	path   string
	lastID int
	tasks  []*models.Task
	lock   *fileLock

	// Now supplies timestamps for new tasks. Defaults to time.Now.
	Now func() time.Time
}

// DefaultPath returns ~/.vibe_tasks.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Open takes the advisory lock for path and loads the store. The lock is
// held until Close.
func Open(path string) (*Store, error) {
	lock, err := acquireLock(path + ".lock")
	if err != nil {
		return nil, err
	}

	s, err := Load(path)
	if err != nil {
		lock.release()
		return nil, err
	}
	s.lock = lock
	return s, nil
}

// Load reads the store at path without locking. A missing or empty file
// yields an empty store; unparsable content yields a CorruptDataError.
func Load(path string) (*Store, error) {
	s := &Store{path: path, Now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return s, nil
	}

	doc, err := decode(data)
	if err != nil {
		return nil, &models.CorruptDataError{Path: path, Err: err}
	}

	if err := s.adopt(doc); err != nil {
		return nil, &models.CorruptDataError{Path: path, Err: err}
	}
	return s, nil
}

// decode accepts the current document layout and the legacy bare array.
func decode(data []byte) (*document, error) {
	if data[0] == '[' {
		return decodeLegacy(data)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d", doc.Version)
	}
	return &doc, nil
}

// adopt validates a decoded document and fills defaults.
func (s *Store) adopt(doc *document) error {
	seen := make(map[int]bool, len(doc.Tasks))
	maxID := 0
	tasks := make([]*models.Task, 0, len(doc.Tasks))

	for i, t := range doc.Tasks {
		if t == nil {
			return fmt.Errorf("task entry %d is null", i)
		}
		if t.ID <= 0 {
			return fmt.Errorf("task entry %d has invalid id %d", i, t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
		if t.ID > maxID {
			maxID = t.ID
		}
		t.Categories = dedupe(t.Categories)
		tasks = append(tasks, t)
	}

	s.tasks = tasks
	s.lastID = doc.LastID
	if maxID > s.lastID {
		s.lastID = maxID
	}
	return nil
}

// dedupe drops repeated categories and orders the rest by palette.
func dedupe(cats []models.Category) []models.Category {
	if len(cats) == 0 {
		return nil
	}
	seen := make(map[models.Category]bool, len(cats))
	for _, c := range cats {
		seen[c] = true
	}
	out := make([]models.Category, 0, len(seen))
	for _, c := range models.Palette() {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Close releases the advisory lock, if held.
func (s *Store) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.release()
	s.lock = nil
	return err
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Save writes the whole collection to a temp file and renames it over the
// store file, so a failed save leaves the previous content intact.
func (s *Store) Save() error {
	doc := document{
		Version: FormatVersion,
		LastID:  s.lastID,
		Tasks:   s.tasks,
	}
	if doc.Tasks == nil {
		doc.Tasks = []*models.Task{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}

// --- Task Operations ---

// Add creates a task with status Todo and the next unused id.
func (s *Store) Add(title, description string, priority models.Priority, due *time.Time) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if priority < models.PriorityLow || priority > models.PriorityUrgent {
		return nil, &models.ValidationError{Field: "priority", Reason: fmt.Sprintf("out of range: %d", int(priority))}
	}

	s.lastID++
	task := &models.Task{
		ID:          s.lastID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Status:      models.StatusTodo,
		DueDate:     due,
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// Get returns the task with id. The returned pointer may be mutated in place
// and is persisted by the next Save.
func (s *Store) Get(id int) (*models.Task, error) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], nil
	}
	return nil, &models.NotFoundError{ID: id}
}

// Delete removes the task and its sessions. The id is never reallocated.
func (s *Store) Delete(id int) error {
	i := s.index(id)
	if i < 0 {
		return &models.NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// List returns all tasks in insertion (id) order.
func (s *Store) List() []*models.Task {
	out := make([]*models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filter returns the tasks with the given status, in id order.
func (s *Store) Filter(status models.Status) []*models.Task {
	var out []*models.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// SetStatus assigns a status without transition checks.
func (s *Store) SetStatus(id int, status models.Status) error {
	if status < models.StatusTodo || status > models.StatusDone {
		return &models.ValidationError{Field: "status", Reason: fmt.Sprintf("out of range: %d", int(status))}
	}
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	task.Status = status
	return nil
}

// SetPriority assigns a priority.
func (s *Store) SetPriority(id int, priority models.Priority) error {
	if priority < models.PriorityLow || priority > models.PriorityUrgent {
		return &models.ValidationError{Field: "priority", Reason: fmt.Sprintf("out of range: %d", int(priority))}
	}
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	task.Priority = priority
	return nil
}

func (s *Store) index(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
