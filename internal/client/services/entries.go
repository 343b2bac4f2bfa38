package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/sicmundus/tracker/internal/client/models"
)

// FetchEntries loads the entries of one task; Entries returns them afterwards.
func (s *EntityStore) FetchEntries(ctx context.Context, taskID string) {
	s.beginFetch(false)
	entries, err := s.client.ListEntries(ctx, taskID)
	s.endFetch(ctx, false, "entries", err, func() {
		s.entries = entries
		s.entriesTaskID = taskID
	})
}

// FetchAllEntries loads the entries of every task of the user.
func (s *EntityStore) FetchAllEntries(ctx context.Context) {
	s.beginFetch(true)
	entries, err := s.client.ListAllEntries(ctx)
	s.endFetch(ctx, true, "all entries", err, func() {
		s.allEntries = entries
	})
}

// CreateEntry logs time on a task. The entry goes first in the task's entry
// list when that list is the one on display, and tasks are reloaded so their
// totals include it.
func (s *EntityStore) CreateEntry(ctx context.Context, taskID string, req models.CreateEntryRequest) (models.TimeEntry, error) {
	entry, err := s.client.CreateEntry(ctx, taskID, req)
	if err != nil {
		s.logger.Warn(ctx, "create entry failed", "task_id", taskID, "err", err)
		return models.TimeEntry{}, fmt.Errorf("create entry: %w", err)
	}
	entry.Merge(taskID, req)

	s.mu.Lock()
	if s.entriesTaskID == taskID {
		s.entries = slices.Insert(s.entries, 0, *entry)
	}
	s.mu.Unlock()

	s.FetchTasks(ctx)
	return *entry, nil
}

func (s *EntityStore) UpdateEntry(ctx context.Context, id string, req models.UpdateEntryRequest) (models.TimeEntry, error) {
	entry, err := s.client.UpdateEntry(ctx, id, req)
	if err != nil {
		s.logger.Warn(ctx, "update entry failed", "entry_id", id, "err", err)
		return models.TimeEntry{}, fmt.Errorf("update entry %s: %w", id, err)
	}

	s.mu.Lock()
	if i := indexByID(s.entries, id, idOfEntry); i >= 0 {
		s.entries[i] = *entry
	}
	if i := indexByID(s.allEntries, id, idOfEntry); i >= 0 {
		s.allEntries[i] = *entry
	}
	s.mu.Unlock()
	return *entry, nil
}

func (s *EntityStore) DeleteEntry(ctx context.Context, id string) error {
	if err := s.client.DeleteEntry(ctx, id); err != nil {
		s.logger.Error(ctx, "delete entry failed", "entry_id", id, "err", err)
		return fmt.Errorf("delete entry %s: %w", id, err)
	}

	match := func(e models.TimeEntry) bool { return e.ID == id }
	s.mu.Lock()
	s.entries = slices.DeleteFunc(s.entries, match)
	s.allEntries = slices.DeleteFunc(s.allEntries, match)
	s.mu.Unlock()

	s.FetchTasks(ctx)
	return nil
}

func (s *EntityStore) Entries() []models.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

func (s *EntityStore) AllEntries() []models.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.allEntries)
}
