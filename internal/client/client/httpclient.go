package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sicmundus/tracker/internal/client/models"
)

// HTTPClient implements Client over a Gateway.
type HTTPClient struct {
	gw *Gateway
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(gw *Gateway) *HTTPClient {
	return &HTTPClient{gw: gw}
}

func seg(id string) string { return url.PathEscape(id) }

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.gw.Do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.gw.Do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := c.gw.Do(ctx, http.MethodGet, "/me", nil, &u); err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.gw.Do(ctx, http.MethodPut, "/password", req, nil)
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := c.gw.Do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	var t models.Task
	if err := c.gw.Do(ctx, http.MethodPost, "/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	var t models.Task
	if err := c.gw.Do(ctx, http.MethodPut, "/tasks/"+seg(id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.gw.Do(ctx, http.MethodDelete, "/tasks/"+seg(id), nil, nil)
}

func (c *HTTPClient) BulkDeleteTasks(ctx context.Context, ids []string) (*models.BulkDeleteResponse, error) {
	var resp models.BulkDeleteResponse
	if err := c.gw.Do(ctx, http.MethodPost, "/tasks/bulk-delete", models.BulkDeleteRequest{IDs: ids}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, taskID string) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	if err := c.gw.Do(ctx, http.MethodGet, "/tasks/"+seg(taskID)+"/entries", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) ListAllEntries(ctx context.Context) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	if err := c.gw.Do(ctx, http.MethodGet, "/entries", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry returns the entry as far as the server describes it; the
// current backend only echoes {"id"}, callers fill the rest with Merge.
func (c *HTTPClient) CreateEntry(ctx context.Context, taskID string, req models.CreateEntryRequest) (*models.TimeEntry, error) {
	var e models.TimeEntry
	if err := c.gw.Do(ctx, http.MethodPost, "/tasks/"+seg(taskID)+"/entries", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id string, req models.UpdateEntryRequest) (*models.TimeEntry, error) {
	var e models.TimeEntry
	if err := c.gw.Do(ctx, http.MethodPut, "/entries/"+seg(id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id string) error {
	return c.gw.Do(ctx, http.MethodDelete, "/entries/"+seg(id), nil, nil)
}

func (c *HTTPClient) ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error) {
	subtasks := []models.Subtask{}
	if err := c.gw.Do(ctx, http.MethodGet, "/tasks/"+seg(taskID)+"/subtasks", nil, &subtasks); err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (c *HTTPClient) CreateSubtask(ctx context.Context, taskID string, req models.CreateSubtaskRequest) (*models.Subtask, error) {
	var s models.Subtask
	if err := c.gw.Do(ctx, http.MethodPost, "/tasks/"+seg(taskID)+"/subtasks", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) UpdateSubtask(ctx context.Context, id string, req models.UpdateSubtaskRequest) (*models.Subtask, error) {
	var s models.Subtask
	if err := c.gw.Do(ctx, http.MethodPut, "/subtasks/"+seg(id), req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) DeleteSubtask(ctx context.Context, id string) error {
	return c.gw.Do(ctx, http.MethodDelete, "/subtasks/"+seg(id), nil, nil)
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := c.gw.Do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	var p models.Project
	if err := c.gw.Do(ctx, http.MethodPost, "/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	var p models.Project
	if err := c.gw.Do(ctx, http.MethodPut, "/projects/"+seg(id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, id string) error {
	return c.gw.Do(ctx, http.MethodDelete, "/projects/"+seg(id), nil, nil)
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var d models.DashboardSummary
	if err := c.gw.Do(ctx, http.MethodGet, "/dashboard/summary", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) StartTimer(ctx context.Context, taskID string, req models.StartTimerRequest) (*models.ActiveTimer, error) {
	var t models.ActiveTimer
	if err := c.gw.Do(ctx, http.MethodPost, "/timer/start/"+seg(taskID), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) StopTimer(ctx context.Context) (*models.StopSummary, error) {
	var s models.StopSummary
	if err := c.gw.Do(ctx, http.MethodPost, "/timer/stop", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) ActiveTimer(ctx context.Context) (*models.ActiveTimerResponse, error) {
	var r models.ActiveTimerResponse
	if err := c.gw.Do(ctx, http.MethodGet, "/timer/active", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
