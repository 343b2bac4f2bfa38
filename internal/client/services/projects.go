package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/sicmundus/tracker/internal/client/models"
)

func (s *EntityStore) FetchProjects(ctx context.Context) {
	s.beginFetch(false)
	projects, err := s.client.ListProjects(ctx)
	s.endFetch(ctx, false, "projects", err, func() {
		s.projects = projects
	})
}

func (s *EntityStore) CreateProject(ctx context.Context, req models.CreateProjectRequest) (models.Project, error) {
	project, err := s.client.CreateProject(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "create project failed", "err", err)
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.mu.Lock()
	s.projects = append(s.projects, *project)
	s.mu.Unlock()
	return *project, nil
}

func (s *EntityStore) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (models.Project, error) {
	project, err := s.client.UpdateProject(ctx, id, req)
	if err != nil {
		s.logger.Warn(ctx, "update project failed", "project_id", id, "err", err)
		return models.Project{}, fmt.Errorf("update project %s: %w", id, err)
	}

	s.mu.Lock()
	if i := indexByID(s.projects, id, idOfProject); i >= 0 {
		s.projects[i] = *project
	}
	s.mu.Unlock()
	return *project, nil
}

// DeleteProject removes the project and reloads tasks, whose project fields
// the server has cleared.
func (s *EntityStore) DeleteProject(ctx context.Context, id string) error {
	if err := s.client.DeleteProject(ctx, id); err != nil {
		s.logger.Error(ctx, "delete project failed", "project_id", id, "err", err)
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	s.mu.Lock()
	s.projects = slices.DeleteFunc(s.projects, func(p models.Project) bool { return p.ID == id })
	s.mu.Unlock()

	s.FetchTasks(ctx)
	return nil
}

func (s *EntityStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}
