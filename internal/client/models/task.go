package models

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Status       TaskStatus `json:"status"`
	Priority     string     `json:"priority"`
	UserID       string     `json:"user_id"`
	StartDate    *string    `json:"start_date"`
	DueDate      *string    `json:"due_date"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
	ProjectID    *string    `json:"project_id"`
	ProjectName  *string    `json:"project_name"`
	ProjectColor *string    `json:"project_color"`
	TotalMinutes int64      `json:"total_minutes"`
	EntryCount   int64      `json:"entry_count"`
	SubtaskCount int64      `json:"subtask_count"`
	SubtaskDone  int64      `json:"subtask_done"`
}

// CreateTaskRequest is the body of POST /tasks. Nil fields are omitted.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id; only non-nil fields change.
type UpdateTaskRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Priority    *string     `json:"priority,omitempty"`
	ProjectID   *string     `json:"project_id,omitempty"`
	StartDate   *string     `json:"start_date,omitempty"`
	DueDate     *string     `json:"due_date,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type BulkDeleteResponse struct {
	DeletedCount int `json:"deleted_count"`
}

type Subtask struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title"`
}

type UpdateSubtaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Position  *int    `json:"position,omitempty"`
}
