package models

type TimeEntry struct {
	ID              string  `json:"id"`
	TaskID          string  `json:"task_id"`
	TaskTitle       *string `json:"task_title,omitempty"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes int64   `json:"duration_minutes"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"created_at"`
}

type CreateEntryRequest struct {
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes int64   `json:"duration_minutes"`
	Notes           string  `json:"notes"`
}

type UpdateEntryRequest struct {
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int64  `json:"duration_minutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// Merge completes a create response that only echoes the new id: fields the
// server left empty are taken from the request that produced it.
func (e *TimeEntry) Merge(taskID string, req CreateEntryRequest) {
	if e.TaskID == "" {
		e.TaskID = taskID
	}
	if e.StartTime == "" {
		e.StartTime = req.StartTime
	}
	if e.EndTime == nil {
		e.EndTime = req.EndTime
	}
	if e.DurationMinutes == 0 {
		e.DurationMinutes = req.DurationMinutes
	}
	if e.Notes == "" {
		e.Notes = req.Notes
	}
}
