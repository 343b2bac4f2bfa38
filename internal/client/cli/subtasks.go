package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Subtasks(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("subtasks <task>")
	}
	subtasks, err := a.store.FetchSubtasks(ctx, args[0])
	if err != nil {
		return err
	}
	a.println(renderSubtasks(subtasks))
	return nil
}

func (a *App) AddSubtask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("addsub <task> <title>")
	}
	sub, err := a.store.AddSubtask(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.println("Subtask added:", sub.ID)
	return nil
}

func (a *App) ToggleSubtask(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "done" && args[1] != "open") {
		return usage("togglesub <subtask> done|open")
	}
	sub, err := a.store.ToggleSubtask(ctx, args[0], args[1] == "done")
	if err != nil {
		return err
	}
	a.printProgress(sub.TaskID)
	return nil
}

func (a *App) RemoveSubtask(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("rmsub <subtask> <task>")
	}
	if err := a.store.RemoveSubtask(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.printProgress(args[1])
	return nil
}

// SyncSubtasks recounts a task's subtasks from the server.
func (a *App) SyncSubtasks(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("syncsub <task>")
	}
	if err := a.store.ReconcileSubtasks(ctx, args[0]); err != nil {
		return err
	}
	a.printProgress(args[0])
	return nil
}

func (a *App) printProgress(taskID string) {
	task, ok := a.store.Task(taskID)
	if !ok {
		return
	}
	a.println(fmt.Sprintf("%s: %d/%d subtasks done", task.Title, task.SubtaskDone, task.SubtaskCount))
}
