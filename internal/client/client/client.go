package client

import (
	"context"

	"github.com/sicmundus/tracker/internal/client/models"
)

// Client is the typed contract of the tracker API.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	BulkDeleteTasks(ctx context.Context, ids []string) (*models.BulkDeleteResponse, error)

	ListEntries(ctx context.Context, taskID string) ([]models.TimeEntry, error)
	ListAllEntries(ctx context.Context) ([]models.TimeEntry, error)
	CreateEntry(ctx context.Context, taskID string, req models.CreateEntryRequest) (*models.TimeEntry, error)
	UpdateEntry(ctx context.Context, id string, req models.UpdateEntryRequest) (*models.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error)
	CreateSubtask(ctx context.Context, taskID string, req models.CreateSubtaskRequest) (*models.Subtask, error)
	UpdateSubtask(ctx context.Context, id string, req models.UpdateSubtaskRequest) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	Dashboard(ctx context.Context) (*models.DashboardSummary, error)

	StartTimer(ctx context.Context, taskID string, req models.StartTimerRequest) (*models.ActiveTimer, error)
	StopTimer(ctx context.Context) (*models.StopSummary, error)
	ActiveTimer(ctx context.Context) (*models.ActiveTimerResponse, error)
}
