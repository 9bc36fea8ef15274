package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fentz26/vibetasks/internal/models"
)

// legacyTask is the layout written by the first release of the tool: a bare
// array of tasks, categories stored with their presentation, and time entries
// that carry their own end and duration.
type legacyTask struct {
	ID               int               `json:"id"`
	Title            string            `json:"title"`
	Description      *string           `json:"description"`
	Priority         models.Priority   `json:"priority"`
	Status           models.Status     `json:"status"`
	DueDate          *time.Time        `json:"due_date"`
	CreatedAt        time.Time         `json:"created_at"`
	Categories       []legacyCategory  `json:"categories"`
	TimeEntries      []legacyTimeEntry `json:"time_entries"`
	CurrentTimeEntry *legacyTimeEntry  `json:"current_time_entry"`
	LastNotification *time.Time        `json:"last_notification"`
}

type legacyCategory struct {
	Name string `json:"name"`
}

type legacyTimeEntry struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func decodeLegacy(data []byte) (*document, error) {
	var old []legacyTask
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, err
	}

	doc := &document{Version: FormatVersion, Tasks: make([]*models.Task, 0, len(old))}
	for _, lt := range old {
		t := &models.Task{
			ID:             lt.ID,
			Title:          lt.Title,
			Priority:       lt.Priority,
			Status:         lt.Status,
			DueDate:        lt.DueDate,
			CreatedAt:      lt.CreatedAt,
			LastNotifiedAt: lt.LastNotification,
		}
		if lt.Description != nil {
			t.Description = *lt.Description
		}

		for _, c := range lt.Categories {
			cat, err := models.ParseCategory(c.Name)
			if err != nil {
				return nil, fmt.Errorf("task %d: %w", lt.ID, err)
			}
			t.Categories = append(t.Categories, cat)
		}

		for _, e := range lt.TimeEntries {
			// Entries without an end were never closed; they carry no duration.
			if e.EndTime == nil {
				continue
			}
			t.TimeSessions = append(t.TimeSessions, models.TimeSession{Start: e.StartTime, End: *e.EndTime})
		}

		if lt.CurrentTimeEntry != nil {
			start := lt.CurrentTimeEntry.StartTime
			t.ActiveSessionStart = &start
		}

		doc.Tasks = append(doc.Tasks, t)
	}
	renumberDuplicates(doc.Tasks)
	return doc, nil
}

// renumberDuplicates gives every repeated id a fresh one above the current
// maximum, in array order. The legacy tool allocated ids from the task count,
// so a delete followed by an add produced duplicates.
func renumberDuplicates(tasks []*models.Task) {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	seen := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			maxID++
			log.Warn("renumbered duplicate legacy task id", "title", t.Title, "old", t.ID, "new", maxID)
			t.ID = maxID
		}
		seen[t.ID] = true
	}
}
