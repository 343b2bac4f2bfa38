package services

import (
	"context"
	"slices"
	"sync"

	"github.com/sicmundus/tracker/internal/client/client"
	"github.com/sicmundus/tracker/internal/client/models"
	"github.com/sicmundus/tracker/internal/logging"
)

// EntityStore mirrors the server's tasks, projects, time entries and
// dashboard. Collections are only changed after the server confirmed the
// operation, and always from the server's answer.
type EntityStore struct {
	client client.Client
	logger logging.Logger

	mu            sync.RWMutex
	tasks         []models.Task
	projects      []models.Project
	entries       []models.TimeEntry
	entriesTaskID string
	allEntries    []models.TimeEntry
	dashboard     *models.DashboardSummary
	loading       int
	err           error
}

func NewEntityStore(c client.Client, logger logging.Logger) *EntityStore {
	return &EntityStore{client: c, logger: logger}
}

// Loading reports whether a task, dashboard or all-entries fetch is running.
func (s *EntityStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Err returns the error of the last failed fetch, nil once a later fetch
// has started.
func (s *EntityStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Reset forgets everything, for use when the session ends.
func (s *EntityStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.projects = nil
	s.entries = nil
	s.entriesTaskID = ""
	s.allEntries = nil
	s.dashboard = nil
	s.err = nil
}

// beginFetch clears the error flag and, when track is set, raises Loading.
func (s *EntityStore) beginFetch(track bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	if track {
		s.loading++
	}
}

// endFetch lowers Loading and, on success, applies the result under the lock.
func (s *EntityStore) endFetch(ctx context.Context, track bool, what string, err error, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if track {
		s.loading--
	}
	if err != nil {
		s.err = err
		s.logger.Warn(ctx, "fetch failed", "what", what, "err", err)
		return
	}
	apply()
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(items, func(v T) bool { return idOf(v) == id })
}

func idOfTask(t models.Task) string       { return t.ID }
func idOfProject(p models.Project) string { return p.ID }
func idOfEntry(e models.TimeEntry) string { return e.ID }
