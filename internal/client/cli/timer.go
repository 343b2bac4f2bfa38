package cli

import (
	"context"
	"strings"
)

func (a *App) Start(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("start <task> [notes]")
	}
	timer, err := a.timer.Start(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.println("Timer started on", timer.TaskID)
	return nil
}

func (a *App) Stop(ctx context.Context, args []string) error {
	summary, err := a.timer.Stop(ctx)
	if err != nil {
		return err
	}
	if !summary.Stopped {
		msg := summary.Message
		if msg == "" {
			msg = "No timer was running."
		}
		a.println(msg)
		return nil
	}
	a.println("Timer stopped:", renderMinutes(summary.DurationMinutes), "logged on", summary.TaskID)
	return nil
}

// Timer shows the running timer with the locally counted elapsed time.
func (a *App) Timer(ctx context.Context, args []string) error {
	a.println(renderTimer(a.timer.Active(), a.timer.ElapsedSeconds()))
	return nil
}

func (a *App) Dashboard(ctx context.Context, args []string) error {
	a.store.FetchDashboard(ctx)
	if err := a.store.Err(); err != nil {
		return err
	}
	a.println(renderDashboard(a.store.Dashboard()))
	return nil
}

// Refresh reloads tasks, projects and the timer from the server.
func (a *App) Refresh(ctx context.Context, args []string) error {
	if err := a.loadAll(ctx); err != nil {
		return err
	}
	a.println("Refreshed.")
	return nil
}
