package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sicmundus/tracker/internal/client/models"
)

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Tasks lists the tasks, optionally only those with the given status.
func (a *App) Tasks(ctx context.Context, args []string) error {
	a.store.FetchTasks(ctx)
	if err := a.store.Err(); err != nil {
		return err
	}

	tasks := a.store.Tasks()
	if len(args) > 0 {
		switch models.TaskStatus(args[0]) {
		case models.StatusPending:
			tasks = a.store.PendingTasks()
		case models.StatusInProgress:
			tasks = a.store.InProgressTasks()
		case models.StatusCompleted:
			tasks = a.store.CompletedTasks()
		default:
			return usage("tasks [pending|in_progress|completed]")
		}
	}
	a.println(renderTasks(tasks, a.timer.ActiveTaskID()))
	return nil
}

func (a *App) AddTask(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = a.promptRequired("Title"); err != nil {
			return err
		}
	}
	description, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	priority, err := a.prompt("Priority (low, medium, high; optional)")
	if err != nil {
		return err
	}
	projectID, err := a.prompt("Project id (optional)")
	if err != nil {
		return err
	}
	due, err := a.prompt("Due date YYYY-MM-DD (optional)")
	if err != nil {
		return err
	}

	task, err := a.store.CreateTask(ctx, models.CreateTaskRequest{
		Title:       title,
		Description: optional(description),
		Priority:    optional(priority),
		ProjectID:   optional(projectID),
		DueDate:     optional(due),
	})
	if err != nil {
		return err
	}
	a.println("Task created:", task.ID)
	return nil
}

// SetTask changes one field of a task: settask <id> <field> <value>.
func (a *App) SetTask(ctx context.Context, args []string) error {
	const help = "settask <id> title|description|category|status|priority|project|start|due <value>"
	if len(args) < 3 {
		return usage(help)
	}
	id, field, value := args[0], args[1], strings.Join(args[2:], " ")

	var req models.UpdateTaskRequest
	switch field {
	case "title":
		req.Title = &value
	case "description":
		req.Description = &value
	case "category":
		req.Category = &value
	case "priority":
		req.Priority = &value
	case "project":
		req.ProjectID = &value
	case "start":
		req.StartDate = &value
	case "due":
		req.DueDate = &value
	case "status":
		status := models.TaskStatus(value)
		if !status.Valid() {
			return errors.New("status must be pending, in_progress or completed")
		}
		req.Status = &status
	default:
		return usage(help)
	}

	task, err := a.store.UpdateTask(ctx, id, req)
	if err != nil {
		return err
	}
	a.println("Task updated:", task.ID, renderStatus(task.Status))
	return nil
}

func (a *App) RemoveTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rmtask <id>")
	}
	if err := a.store.DeleteTask(ctx, args[0]); err != nil {
		return err
	}
	a.println("Task deleted.")
	return nil
}

func (a *App) RemoveTasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("rmtasks <id>...")
	}
	n, err := a.store.BulkDeleteTasks(ctx, args)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("%d task(s) deleted.", n))
	return nil
}
