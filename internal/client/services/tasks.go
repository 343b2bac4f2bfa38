package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/sicmundus/tracker/internal/client/models"
)

// FetchTasks replaces the task list with the server's.
func (s *EntityStore) FetchTasks(ctx context.Context) {
	s.beginFetch(true)
	tasks, err := s.client.ListTasks(ctx)
	s.endFetch(ctx, true, "tasks", err, func() {
		s.tasks = tasks
	})
}

func (s *EntityStore) CreateTask(ctx context.Context, req models.CreateTaskRequest) (models.Task, error) {
	task, err := s.client.CreateTask(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "create task failed", "err", err)
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	s.tasks = slices.Insert(s.tasks, 0, *task)
	s.mu.Unlock()
	return *task, nil
}

// UpdateTask sends the changed fields and replaces the local task, in place,
// with the server's version. A task not held locally is left alone.
func (s *EntityStore) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error) {
	task, err := s.client.UpdateTask(ctx, id, req)
	if err != nil {
		s.logger.Warn(ctx, "update task failed", "task_id", id, "err", err)
		return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}

	s.mu.Lock()
	if i := indexByID(s.tasks, id, idOfTask); i >= 0 {
		s.tasks[i] = *task
	}
	s.mu.Unlock()
	return *task, nil
}

func (s *EntityStore) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.DeleteTask(ctx, id); err != nil {
		s.logger.Error(ctx, "delete task failed", "task_id", id, "err", err)
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.mu.Lock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	s.mu.Unlock()
	return nil
}

// BulkDeleteTasks deletes ids in one call. Nothing is removed locally unless
// the whole call succeeded.
func (s *EntityStore) BulkDeleteTasks(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	resp, err := s.client.BulkDeleteTasks(ctx, ids)
	if err != nil {
		s.logger.Error(ctx, "bulk delete failed", "count", len(ids), "err", err)
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return slices.Contains(ids, t.ID) })
	s.mu.Unlock()
	return resp.DeletedCount, nil
}

func (s *EntityStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *EntityStore) Task(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.tasks, id, idOfTask); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

func (s *EntityStore) PendingTasks() []models.Task    { return s.tasksWith(models.StatusPending) }
func (s *EntityStore) InProgressTasks() []models.Task { return s.tasksWith(models.StatusInProgress) }
func (s *EntityStore) CompletedTasks() []models.Task  { return s.tasksWith(models.StatusCompleted) }

func (s *EntityStore) tasksWith(status models.TaskStatus) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
