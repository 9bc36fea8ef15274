package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fentz26/vibetasks/internal/audit"
	"github.com/fentz26/vibetasks/internal/config"
	"github.com/fentz26/vibetasks/internal/models"
	"github.com/fentz26/vibetasks/internal/store"
)

// session is one command invocation: config, the locked store and the
// optional journal.
type session struct {
	cfg      *config.Config
	store    *store.Store
	journal  *audit.Journal
	recorder *audit.Recorder
	now      time.Time
}

// outcome is what a mutating command reports to the journal.
type outcome struct {
	taskID  int
	details string
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadConfig(configFile)
	}
	return config.LoadConfigFromHome()
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path, err := cfg.ResolveStorePath(storeFile)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	log.Debug("store loaded", "path", path, "tasks", st.Len())

	return &session{cfg: cfg, store: st, now: time.Now()}, nil
}

const journalPingTimeout = 2 * time.Second

// openJournal attaches the audit journal. A journal that cannot be opened
// is logged and the session continues without one.
func (s *session) openJournal() {
	if !s.cfg.Audit.Enabled {
		return
	}
	path, err := s.cfg.AuditPath()
	if err != nil {
		log.Warn("audit journal disabled", "err", err)
		return
	}
	j, err := audit.Open(path)
	if err != nil {
		log.Warn("audit journal disabled", "path", path, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalPingTimeout)
	defer cancel()
	if err := j.Ping(ctx); err != nil {
		log.Warn("audit journal disabled", "path", path, "err", err)
		j.Close()
		return
	}
	s.journal = j
	s.recorder = audit.NewRecorder(j)
}

func (s *session) record(action string, inputs interface{}, result string, out outcome) {
	if _, err := s.recorder.Record(action, inputs, result, out.taskID, out.details); err != nil {
		log.Warn("failed to write audit entry", "action", action, "err", err)
	}
}

func (s *session) close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Warn("failed to close audit journal", "err", err)
		}
	}
	if err := s.store.Close(); err != nil {
		log.Warn("failed to release store lock", "err", err)
	}
}

// view runs fn against the store without saving.
func view(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

// mutate runs fn, saves the store only when fn succeeds and journals the
// result. The store lock is held for the whole call.
func mutate(action string, inputs interface{}, fn func(s *session) (outcome, error)) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	s.openJournal()

	out, err := fn(s)
	if err != nil {
		s.record(action, inputs, "failed", outcome{taskID: out.taskID, details: err.Error()})
		return err
	}

	if err := s.store.Save(); err != nil {
		s.record(action, inputs, "failed", outcome{taskID: out.taskID, details: err.Error()})
		return err
	}
	log.Debug("store saved", "path", s.store.Path(), "tasks", s.store.Len())

	s.record(action, inputs, "success", out)
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a positive integer", arg)}
	}
	return id, nil
}

var dueLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

// parseDue reads a due date in local time, or RFC 3339 with an explicit
// offset.
func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, &models.ValidationError{Field: "due", Reason: fmt.Sprintf("%q is not YYYY-MM-DD [HH:MM]", s)}
}
