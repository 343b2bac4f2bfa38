package models

type DashboardSummary struct {
	TotalTasks        int64          `json:"total_tasks"`
	CompletedTasks    int64          `json:"completed_tasks"`
	PendingTasks      int64          `json:"pending_tasks"`
	InProgressTasks   int64          `json:"in_progress_tasks"`
	TotalMinutesToday int64          `json:"total_minutes_today"`
	TotalMinutesMonth int64          `json:"total_minutes_month"`
	TotalEntriesToday int64          `json:"total_entries_today"`
	RecentEntries     []RecentEntry  `json:"recent_entries"`
	ProjectStats      []ProjectStat  `json:"project_stats"`
	DailyMinutes      []DailyMinutes `json:"daily_minutes"`
}

type RecentEntry struct {
	EntryID         string `json:"entry_id"`
	TaskID          string `json:"task_id"`
	TaskTitle       string `json:"task_title"`
	DurationMinutes int64  `json:"duration_minutes"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"created_at"`
}

type ProjectStat struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	TaskCount    int64  `json:"task_count"`
	TotalMinutes int64  `json:"total_minutes"`
}

type DailyMinutes struct {
	Date    *string `json:"date"`
	Minutes *int64  `json:"minutes"`
}
