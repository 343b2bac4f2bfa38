package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sicmundus/tracker/internal/client/models"
)

// Entries lists one task's time entries, or all of them without arguments.
func (a *App) Entries(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.store.FetchAllEntries(ctx)
		if err := a.store.Err(); err != nil {
			return err
		}
		a.println(renderEntries(a.store.AllEntries()))
		return nil
	}

	a.store.FetchEntries(ctx, args[0])
	if err := a.store.Err(); err != nil {
		return err
	}
	a.println(renderEntries(a.store.Entries()))
	return nil
}

// AddEntry logs minutes of work on a task, ending now.
func (a *App) AddEntry(ctx context.Context, args []string) error {
	const help = "addentry <task> <minutes> [notes]"
	if len(args) < 2 {
		return usage(help)
	}
	minutes, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || minutes <= 0 {
		return usage(help)
	}

	end := a.clock.Now().UTC()
	start := end.Add(-time.Duration(minutes) * time.Minute)
	endStr := end.Format(time.RFC3339)

	entry, err := a.store.CreateEntry(ctx, args[0], models.CreateEntryRequest{
		StartTime:       start.Format(time.RFC3339),
		EndTime:         &endStr,
		DurationMinutes: minutes,
		Notes:           strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	a.println("Entry added:", entry.ID, renderMinutes(entry.DurationMinutes))
	return nil
}

func (a *App) RemoveEntry(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rmentry <id>")
	}
	if err := a.store.DeleteEntry(ctx, args[0]); err != nil {
		return err
	}
	a.println("Entry deleted.")
	return nil
}
