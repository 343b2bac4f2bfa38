package cli

import (
	"context"

	"github.com/sicmundus/tracker/internal/client/models"
)

func (a *App) Projects(ctx context.Context, args []string) error {
	a.store.FetchProjects(ctx)
	if err := a.store.Err(); err != nil {
		return err
	}
	a.println(renderProjects(a.store.Projects()))
	return nil
}

// AddProject: addproject <name> [#color].
func (a *App) AddProject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("addproject <name> [#color]")
	}
	req := models.CreateProjectRequest{Name: args[0]}
	if len(args) > 1 {
		req.Color = &args[1]
	}

	project, err := a.store.CreateProject(ctx, req)
	if err != nil {
		return err
	}
	a.println("Project created:", project.ID)
	return nil
}

func (a *App) RemoveProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rmproject <id>")
	}
	if err := a.store.DeleteProject(ctx, args[0]); err != nil {
		return err
	}
	a.println("Project deleted.")
	return nil
}
