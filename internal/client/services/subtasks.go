package services

import (
	"context"
	"fmt"

	"github.com/sicmundus/tracker/internal/client/models"
)

// Subtasks are not mirrored. The parent task's subtask_count and
// subtask_done are adjusted by one on each confirmed change, which drifts if
// subtasks change elsewhere; ReconcileSubtasks recounts.

func (s *EntityStore) FetchSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error) {
	subtasks, err := s.client.ListSubtasks(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks of %s: %w", taskID, err)
	}
	return subtasks, nil
}

func (s *EntityStore) AddSubtask(ctx context.Context, taskID, title string) (models.Subtask, error) {
	sub, err := s.client.CreateSubtask(ctx, taskID, models.CreateSubtaskRequest{Title: title})
	if err != nil {
		s.logger.Warn(ctx, "add subtask failed", "task_id", taskID, "err", err)
		return models.Subtask{}, fmt.Errorf("add subtask: %w", err)
	}

	s.adjustTask(ctx, taskID, func(t *models.Task) {
		t.SubtaskCount++
	})
	return *sub, nil
}

// ToggleSubtask marks a subtask done or not done. The parent is the task
// named by the server's answer.
func (s *EntityStore) ToggleSubtask(ctx context.Context, subtaskID string, completed bool) (models.Subtask, error) {
	sub, err := s.client.UpdateSubtask(ctx, subtaskID, models.UpdateSubtaskRequest{Completed: &completed})
	if err != nil {
		s.logger.Warn(ctx, "toggle subtask failed", "subtask_id", subtaskID, "err", err)
		return models.Subtask{}, fmt.Errorf("toggle subtask %s: %w", subtaskID, err)
	}

	s.adjustTask(ctx, sub.TaskID, func(t *models.Task) {
		if completed {
			t.SubtaskDone++
		} else {
			t.SubtaskDone = s.decClamped(ctx, t.ID, "subtask_done", t.SubtaskDone)
		}
	})
	return *sub, nil
}

func (s *EntityStore) RemoveSubtask(ctx context.Context, subtaskID, taskID string) error {
	if err := s.client.DeleteSubtask(ctx, subtaskID); err != nil {
		s.logger.Warn(ctx, "remove subtask failed", "subtask_id", subtaskID, "err", err)
		return fmt.Errorf("remove subtask %s: %w", subtaskID, err)
	}

	s.adjustTask(ctx, taskID, func(t *models.Task) {
		t.SubtaskCount = s.decClamped(ctx, t.ID, "subtask_count", t.SubtaskCount)
	})
	return nil
}

// ReconcileSubtasks replaces the parent's counters with the true numbers.
func (s *EntityStore) ReconcileSubtasks(ctx context.Context, taskID string) error {
	subtasks, err := s.FetchSubtasks(ctx, taskID)
	if err != nil {
		return err
	}

	var done int64
	for _, st := range subtasks {
		if st.Completed {
			done++
		}
	}
	s.adjustTask(ctx, taskID, func(t *models.Task) {
		t.SubtaskCount = int64(len(subtasks))
		t.SubtaskDone = done
	})
	return nil
}

func (s *EntityStore) adjustTask(ctx context.Context, taskID string, fn func(*models.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.tasks, taskID, idOfTask)
	if i < 0 {
		s.logger.Debug(ctx, "subtask change for task not held locally", "task_id", taskID)
		return
	}
	fn(&s.tasks[i])
}

func (s *EntityStore) decClamped(ctx context.Context, id, field string, v int64) int64 {
	if v <= 0 {
		s.logger.Debug(ctx, "counter already at zero", "task_id", id, "field", field)
		return 0
	}
	return v - 1
}
