package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/sicmundus/tracker/internal/client/models"
)

// backend is an in-memory tracker API served over httptest.
type backend struct {
	mu sync.Mutex

	passwords map[string]string // username -> password
	users     map[string]models.UserProfile
	sessions  map[string]string // token -> username
	rejectMe  bool
	failTasks bool

	tasks    []models.Task
	projects []models.Project
	entries  []models.TimeEntry
	subtasks []models.Subtask
	active   *models.ActiveTimer
	seq      int
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{
		passwords: map[string]string{},
		users:     map[string]models.UserProfile{},
		sessions:  map[string]string{},
	}
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) addUser(username, password string, forceChange bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.passwords[username] = password
	b.users[username] = models.UserProfile{ID: fmt.Sprintf("u%d", b.seq), Username: username, Role: "user", ForceChangePassword: forceChange}
}

func (b *backend) next(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefix, b.seq)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		if pw, ok := b.passwords[req.Username]; !ok || pw != req.Password {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		token := b.next("tok-")
		b.sessions[token] = req.Username
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: b.users[req.Username]})
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.users[req.Username]; ok {
			http.Error(w, "Username already exists", http.StatusConflict)
			return
		}
		u := models.UserProfile{ID: b.next("u"), Username: req.Username, FullName: req.FullName, Role: "user"}
		b.users[req.Username] = u
		b.passwords[req.Username] = req.Password
		token := b.next("tok-")
		b.sessions[token] = req.Username
		writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: u})
	})

	b.authed(mux, "GET /api/me", func(w http.ResponseWriter, r *http.Request, user string) {
		if b.rejectMe {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		u := b.users[user]
		writeJSON(w, http.StatusOK, map[string]any{"sub": u.ID, "username": u.Username, "role": u.Role, "force_change_password": u.ForceChangePassword})
	})

	b.authed(mux, "PUT /api/password", func(w http.ResponseWriter, r *http.Request, user string) {
		var req models.ChangePasswordRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if b.passwords[user] != req.OldPassword {
			http.Error(w, "Old password incorrect", http.StatusBadRequest)
			return
		}
		b.passwords[user] = req.NewPassword
		u := b.users[user]
		u.ForceChangePassword = false
		b.users[user] = u
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	b.authed(mux, "GET /api/tasks", func(w http.ResponseWriter, r *http.Request, _ string) {
		if b.failTasks {
			http.Error(w, "database is down", http.StatusInternalServerError)
			return
		}
		out := slices.Clone(b.tasks)
		for i := range out {
			for _, e := range b.entries {
				if e.TaskID == out[i].ID {
					out[i].TotalMinutes += e.DurationMinutes
					out[i].EntryCount++
				}
			}
			for _, st := range b.subtasks {
				if st.TaskID == out[i].ID {
					out[i].SubtaskCount++
					if st.Completed {
						out[i].SubtaskDone++
					}
				}
			}
		}
		if out == nil {
			out = []models.Task{}
		}
		writeJSON(w, http.StatusOK, out)
	})

	b.authed(mux, "POST /api/tasks", func(w http.ResponseWriter, r *http.Request, user string) {
		var req models.CreateTaskRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		t := models.Task{ID: b.next("t"), Title: req.Title, Status: models.StatusPending, UserID: b.users[user].ID, ProjectID: req.ProjectID}
		if req.Priority != nil {
			t.Priority = *req.Priority
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		b.tasks = slices.Insert(b.tasks, 0, t)
		writeJSON(w, http.StatusCreated, t)
	})

	b.authed(mux, "PUT /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.UpdateTaskRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		i := slices.IndexFunc(b.tasks, func(t models.Task) bool { return t.ID == r.PathValue("id") })
		if i < 0 {
			http.Error(w, "Task not found", http.StatusNotFound)
			return
		}
		if req.Status != nil {
			b.tasks[i].Status = *req.Status
		}
		if req.Title != nil {
			b.tasks[i].Title = *req.Title
		}
		writeJSON(w, http.StatusOK, b.tasks[i])
	})

	b.authed(mux, "DELETE /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		b.tasks = slices.DeleteFunc(b.tasks, func(t models.Task) bool { return t.ID == r.PathValue("id") })
		w.WriteHeader(http.StatusNoContent)
	})

	b.authed(mux, "POST /api/tasks/bulk-delete", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.BulkDeleteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		before := len(b.tasks)
		b.tasks = slices.DeleteFunc(b.tasks, func(t models.Task) bool { return slices.Contains(req.IDs, t.ID) })
		writeJSON(w, http.StatusOK, models.BulkDeleteResponse{DeletedCount: before - len(b.tasks)})
	})

	b.authed(mux, "GET /api/tasks/{id}/entries", func(w http.ResponseWriter, r *http.Request, _ string) {
		out := []models.TimeEntry{}
		for _, e := range b.entries {
			if e.TaskID == r.PathValue("id") {
				out = append(out, e)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	b.authed(mux, "POST /api/tasks/{id}/entries", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.CreateEntryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		e := models.TimeEntry{ID: b.next("e"), TaskID: r.PathValue("id"), StartTime: req.StartTime, EndTime: req.EndTime, DurationMinutes: req.DurationMinutes, Notes: req.Notes}
		b.entries = slices.Insert(b.entries, 0, e)
		writeJSON(w, http.StatusCreated, map[string]string{"id": e.ID})
	})

	b.authed(mux, "GET /api/entries", func(w http.ResponseWriter, r *http.Request, _ string) {
		out := slices.Clone(b.entries)
		for i := range out {
			for _, t := range b.tasks {
				if t.ID == out[i].TaskID {
					title := t.Title
					out[i].TaskTitle = &title
				}
			}
		}
		if out == nil {
			out = []models.TimeEntry{}
		}
		writeJSON(w, http.StatusOK, out)
	})

	b.authed(mux, "DELETE /api/entries/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		b.entries = slices.DeleteFunc(b.entries, func(e models.TimeEntry) bool { return e.ID == r.PathValue("id") })
		w.WriteHeader(http.StatusNoContent)
	})

	b.authed(mux, "GET /api/tasks/{id}/subtasks", func(w http.ResponseWriter, r *http.Request, _ string) {
		out := []models.Subtask{}
		for _, st := range b.subtasks {
			if st.TaskID == r.PathValue("id") {
				out = append(out, st)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	b.authed(mux, "POST /api/tasks/{id}/subtasks", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.CreateSubtaskRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		st := models.Subtask{ID: b.next("s"), TaskID: r.PathValue("id"), Title: req.Title}
		b.subtasks = append(b.subtasks, st)
		writeJSON(w, http.StatusCreated, st)
	})

	b.authed(mux, "PUT /api/subtasks/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.UpdateSubtaskRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		i := slices.IndexFunc(b.subtasks, func(st models.Subtask) bool { return st.ID == r.PathValue("id") })
		if i < 0 {
			http.Error(w, "Subtask not found", http.StatusNotFound)
			return
		}
		if req.Completed != nil {
			b.subtasks[i].Completed = *req.Completed
		}
		writeJSON(w, http.StatusOK, b.subtasks[i])
	})

	b.authed(mux, "DELETE /api/subtasks/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		b.subtasks = slices.DeleteFunc(b.subtasks, func(st models.Subtask) bool { return st.ID == r.PathValue("id") })
		w.WriteHeader(http.StatusNoContent)
	})

	b.authed(mux, "GET /api/projects", func(w http.ResponseWriter, r *http.Request, _ string) {
		out := slices.Clone(b.projects)
		if out == nil {
			out = []models.Project{}
		}
		writeJSON(w, http.StatusOK, out)
	})

	b.authed(mux, "POST /api/projects", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.CreateProjectRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p := models.Project{ID: b.next("p"), Name: req.Name, Color: "#6366f1"}
		if req.Color != nil {
			p.Color = *req.Color
		}
		b.projects = append(b.projects, p)
		writeJSON(w, http.StatusCreated, p)
	})

	b.authed(mux, "DELETE /api/projects/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		id := r.PathValue("id")
		b.projects = slices.DeleteFunc(b.projects, func(p models.Project) bool { return p.ID == id })
		for i := range b.tasks {
			if b.tasks[i].ProjectID != nil && *b.tasks[i].ProjectID == id {
				b.tasks[i].ProjectID = nil
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})

	b.authed(mux, "GET /api/dashboard/summary", func(w http.ResponseWriter, r *http.Request, _ string) {
		var minutes int64
		for _, e := range b.entries {
			minutes += e.DurationMinutes
		}
		writeJSON(w, http.StatusOK, models.DashboardSummary{
			TotalTasks:        int64(len(b.tasks)),
			TotalMinutesToday: minutes,
			TotalEntriesToday: int64(len(b.entries)),
		})
	})

	b.authed(mux, "POST /api/timer/start/{id}", func(w http.ResponseWriter, r *http.Request, _ string) {
		var req models.StartTimerRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if b.active != nil {
			http.Error(w, "Timer already running", http.StatusConflict)
			return
		}
		b.active = &models.ActiveTimer{ID: b.next("a"), TaskID: r.PathValue("id"), Notes: req.Notes}
		writeJSON(w, http.StatusOK, b.active)
	})

	b.authed(mux, "POST /api/timer/stop", func(w http.ResponseWriter, r *http.Request, _ string) {
		if b.active == nil {
			writeJSON(w, http.StatusOK, models.StopSummary{Stopped: false, Message: "No active timer"})
			return
		}
		e := models.TimeEntry{ID: b.next("e"), TaskID: b.active.TaskID, DurationMinutes: 1}
		b.entries = slices.Insert(b.entries, 0, e)
		sum := models.StopSummary{Stopped: true, TaskID: b.active.TaskID, DurationMinutes: 1, EntryID: e.ID}
		b.active = nil
		writeJSON(w, http.StatusOK, sum)
	})

	b.authed(mux, "GET /api/timer/active", func(w http.ResponseWriter, r *http.Request, _ string) {
		writeJSON(w, http.StatusOK, models.ActiveTimerResponse{Active: b.active != nil, Timer: b.active})
	})

	return mux
}

// authed registers h behind bearer-token checking; h runs under b.mu.
func (b *backend) authed(mux *http.ServeMux, pattern string, h func(w http.ResponseWriter, r *http.Request, user string)) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		user, ok := b.sessions[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r, user)
	})
}
