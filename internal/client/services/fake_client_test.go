package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/sicmundus/tracker/internal/client/client"
	"github.com/sicmundus/tracker/internal/client/models"
)

var errBoom = &client.APIError{Status: 500, Message: "boom"}

var errOffline = &client.APIError{Message: "connection refused"}

// fakeClient implements client.Client over in-memory server state.
type fakeClient struct {
	mu sync.Mutex

	// fail makes the named method return the error instead of doing anything.
	fail  map[string]error
	calls map[string]int

	users    map[string]models.UserProfile // by username
	me       *models.UserProfile
	tasks    []models.Task
	projects []models.Project
	entries  []models.TimeEntry
	subtasks []models.Subtask
	active   *models.ActiveTimer
	nextID   int

	// onMe, when set, runs at the start of Me before any result is produced.
	onMe func()
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		fail:  map[string]error{},
		calls: map[string]int{},
		users: map[string]models.UserProfile{},
	}
}

func (f *fakeClient) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	err := f.fail[method]
	f.mu.Unlock()
	return err
}

func (f *fakeClient) setFail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, method)
		return
	}
	f.fail[method] = err
}

func (f *fakeClient) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeClient) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := f.enter("Login"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[req.Username]
	if !ok {
		return nil, &client.APIError{Status: 401, Message: "Invalid credentials"}
	}
	f.me = &u
	return &models.AuthResponse{Token: "token-" + u.ID, User: u}, nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := f.enter("Register"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[req.Username]; ok {
		return nil, &client.APIError{Status: 409, Message: "Username already exists"}
	}
	u := models.UserProfile{ID: f.id("u"), Username: req.Username, FullName: req.FullName, Role: "user"}
	f.users[req.Username] = u
	f.me = &u
	return &models.AuthResponse{Token: "token-" + u.ID, User: u}, nil
}

func (f *fakeClient) Me(ctx context.Context) (*models.UserProfile, error) {
	if f.onMe != nil {
		f.onMe()
	}
	if err := f.enter("Me"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.me == nil {
		return nil, &client.APIError{Status: 401, Message: "Unauthorized"}
	}
	u := *f.me
	return &u, nil
}

func (f *fakeClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := f.enter("ChangePassword"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.me != nil {
		f.me.ForceChangePassword = false
	}
	return nil
}

func (f *fakeClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	if err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.tasks)
	for i := range out {
		out[i].TotalMinutes, out[i].EntryCount = 0, 0
		for _, e := range f.entries {
			if e.TaskID == out[i].ID {
				out[i].TotalMinutes += e.DurationMinutes
				out[i].EntryCount++
			}
		}
		out[i].SubtaskCount, out[i].SubtaskDone = 0, 0
		for _, st := range f.subtasks {
			if st.TaskID == out[i].ID {
				out[i].SubtaskCount++
				if st.Completed {
					out[i].SubtaskDone++
				}
			}
		}
	}
	return out, nil
}

func (f *fakeClient) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if err := f.enter("CreateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := models.Task{ID: f.id("t"), Title: req.Title, Status: models.StatusPending, ProjectID: req.ProjectID}
	f.tasks = slices.Insert(f.tasks, 0, t)
	return &t, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	if err := f.enter("UpdateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return nil, &client.APIError{Status: 404, Message: "Task not found"}
	}
	if req.Title != nil {
		f.tasks[i].Title = *req.Title
	}
	if req.Status != nil {
		f.tasks[i].Status = *req.Status
	}
	t := f.tasks[i]
	return &t, nil
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) error {
	if err := f.enter("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = slices.DeleteFunc(f.tasks, func(t models.Task) bool { return t.ID == id })
	return nil
}

func (f *fakeClient) BulkDeleteTasks(ctx context.Context, ids []string) (*models.BulkDeleteResponse, error) {
	if err := f.enter("BulkDeleteTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	before := len(f.tasks)
	f.tasks = slices.DeleteFunc(f.tasks, func(t models.Task) bool { return slices.Contains(ids, t.ID) })
	return &models.BulkDeleteResponse{DeletedCount: before - len(f.tasks)}, nil
}

func (f *fakeClient) ListEntries(ctx context.Context, taskID string) ([]models.TimeEntry, error) {
	if err := f.enter("ListEntries"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.TimeEntry{}
	for _, e := range f.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeClient) ListAllEntries(ctx context.Context) ([]models.TimeEntry, error) {
	if err := f.enter("ListAllEntries"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.entries), nil
}

// CreateEntry answers with the id only, like the real backend.
func (f *fakeClient) CreateEntry(ctx context.Context, taskID string, req models.CreateEntryRequest) (*models.TimeEntry, error) {
	if err := f.enter("CreateEntry"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e := models.TimeEntry{ID: f.id("e"), TaskID: taskID, StartTime: req.StartTime, EndTime: req.EndTime, DurationMinutes: req.DurationMinutes, Notes: req.Notes}
	f.entries = slices.Insert(f.entries, 0, e)
	return &models.TimeEntry{ID: e.ID}, nil
}

func (f *fakeClient) UpdateEntry(ctx context.Context, id string, req models.UpdateEntryRequest) (*models.TimeEntry, error) {
	if err := f.enter("UpdateEntry"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.entries, func(e models.TimeEntry) bool { return e.ID == id })
	if i < 0 {
		return nil, &client.APIError{Status: 404, Message: "Entry not found"}
	}
	if req.Notes != nil {
		f.entries[i].Notes = *req.Notes
	}
	if req.DurationMinutes != nil {
		f.entries[i].DurationMinutes = *req.DurationMinutes
	}
	e := f.entries[i]
	return &e, nil
}

func (f *fakeClient) DeleteEntry(ctx context.Context, id string) error {
	if err := f.enter("DeleteEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = slices.DeleteFunc(f.entries, func(e models.TimeEntry) bool { return e.ID == id })
	return nil
}

func (f *fakeClient) ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error) {
	if err := f.enter("ListSubtasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Subtask{}
	for _, st := range f.subtasks {
		if st.TaskID == taskID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateSubtask(ctx context.Context, taskID string, req models.CreateSubtaskRequest) (*models.Subtask, error) {
	if err := f.enter("CreateSubtask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	st := models.Subtask{ID: f.id("s"), TaskID: taskID, Title: req.Title}
	f.subtasks = append(f.subtasks, st)
	return &st, nil
}

func (f *fakeClient) UpdateSubtask(ctx context.Context, id string, req models.UpdateSubtaskRequest) (*models.Subtask, error) {
	if err := f.enter("UpdateSubtask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.subtasks, func(st models.Subtask) bool { return st.ID == id })
	if i < 0 {
		return nil, &client.APIError{Status: 404, Message: "Subtask not found"}
	}
	if req.Completed != nil {
		f.subtasks[i].Completed = *req.Completed
	}
	st := f.subtasks[i]
	return &st, nil
}

func (f *fakeClient) DeleteSubtask(ctx context.Context, id string) error {
	if err := f.enter("DeleteSubtask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subtasks = slices.DeleteFunc(f.subtasks, func(st models.Subtask) bool { return st.ID == id })
	return nil
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	if err := f.enter("ListProjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.projects), nil
}

func (f *fakeClient) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	if err := f.enter("CreateProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Project{ID: f.id("p"), Name: req.Name, Color: "#6366f1"}
	if req.Color != nil {
		p.Color = *req.Color
	}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeClient) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	if err := f.enter("UpdateProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.projects, func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return nil, &client.APIError{Status: 404, Message: "Project not found"}
	}
	if req.Name != nil {
		f.projects[i].Name = *req.Name
	}
	p := f.projects[i]
	return &p, nil
}

func (f *fakeClient) DeleteProject(ctx context.Context, id string) error {
	if err := f.enter("DeleteProject"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = slices.DeleteFunc(f.projects, func(p models.Project) bool { return p.ID == id })
	for i := range f.tasks {
		if f.tasks[i].ProjectID != nil && *f.tasks[i].ProjectID == id {
			f.tasks[i].ProjectID = nil
		}
	}
	return nil
}

func (f *fakeClient) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	if err := f.enter("Dashboard"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.DashboardSummary{
		TotalTasks:    int64(len(f.tasks)),
		RecentEntries: []models.RecentEntry{{EntryID: "e1", TaskTitle: "Write"}},
	}, nil
}

func (f *fakeClient) StartTimer(ctx context.Context, taskID string, req models.StartTimerRequest) (*models.ActiveTimer, error) {
	if err := f.enter("StartTimer"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active != nil {
		return nil, &client.APIError{Status: 409, Message: "Timer already running"}
	}
	f.active = &models.ActiveTimer{ID: f.id("a"), TaskID: taskID, Notes: req.Notes}
	a := *f.active
	return &a, nil
}

func (f *fakeClient) StopTimer(ctx context.Context) (*models.StopSummary, error) {
	if err := f.enter("StopTimer"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return &models.StopSummary{Stopped: false, Message: "No active timer"}, nil
	}
	e := models.TimeEntry{ID: f.id("e"), TaskID: f.active.TaskID, DurationMinutes: 1}
	f.entries = slices.Insert(f.entries, 0, e)
	sum := &models.StopSummary{Stopped: true, TaskID: f.active.TaskID, DurationMinutes: 1, EntryID: e.ID}
	f.active = nil
	return sum, nil
}

func (f *fakeClient) ActiveTimer(ctx context.Context) (*models.ActiveTimerResponse, error) {
	if err := f.enter("ActiveTimer"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return &models.ActiveTimerResponse{Active: false}, nil
	}
	a := *f.active
	return &models.ActiveTimerResponse{Active: true, Timer: &a}, nil
}

// memTokenStore is an in-memory TokenStore.
type memTokenStore struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
	saves   int
	cleared int
}

func (m *memTokenStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.loadErr
}

func (m *memTokenStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokenStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
	m.token = ""
	return nil
}

func (m *memTokenStore) saved() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
