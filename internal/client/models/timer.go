package models

type ActiveTimer struct {
	ID             string `json:"id"`
	TaskID         string `json:"task_id"`
	TaskTitle      string `json:"task_title"`
	StartTime      string `json:"start_time"`
	Notes          string `json:"notes"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	CreatedAt      string `json:"created_at"`
}

type StartTimerRequest struct {
	Notes string `json:"notes"`
}

// ActiveTimerResponse is the body of GET /timer/active.
type ActiveTimerResponse struct {
	Active bool         `json:"active"`
	Timer  *ActiveTimer `json:"timer"`
}

// StopSummary describes the interval closed by POST /timer/stop.
type StopSummary struct {
	Stopped         bool   `json:"stopped"`
	TaskID          string `json:"task_id,omitempty"`
	DurationMinutes int64  `json:"duration_minutes,omitempty"`
	EntryID         string `json:"entry_id,omitempty"`
	Message         string `json:"message,omitempty"`
}
