package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sicmundus/tracker/internal/client/client"
	"github.com/sicmundus/tracker/internal/client/models"
)

var (
	colorMuted = lipgloss.Color("#6c757d")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f9fb0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a")).Bold(true)
	timerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12")).Bold(true)

	statusStyles = map[models.TaskStatus]lipgloss.Style{
		models.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
	}

	idCol     = lipgloss.NewStyle().Width(38)
	statusCol = lipgloss.NewStyle().Width(13)
	titleCol  = lipgloss.NewStyle().Width(34)
	numCol    = lipgloss.NewStyle().Width(10)
)

const titleWidth = 32

func renderError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return errorStyle.Render("Error: server unavailable")
	case errors.As(err, &apiErr):
		return errorStyle.Render(fmt.Sprintf("Error: %s (%d)", apiErr.Message, apiErr.Status))
	}
	return errorStyle.Render("Error: " + err.Error())
}

// renderElapsed formats seconds as HH:MM:SS.
func renderElapsed(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}

// renderMinutes formats minutes as "1h 05m" or "45m".
func renderMinutes(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderStatus(s models.TaskStatus) string {
	style, ok := statusStyles[s]
	if !ok {
		style = mutedStyle
	}
	return style.Render(string(s))
}

func renderTasks(tasks []models.Task, activeTaskID string) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("No tasks.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		idCol.Render("ID"), statusCol.Render("STATUS"), titleCol.Render("TITLE"),
		numCol.Render("TIME"), numCol.Render("SUBTASKS"))))
	for _, t := range tasks {
		title := truncate(t.Title, titleWidth)
		if t.ID == activeTaskID {
			title = timerStyle.Render("▶ " + truncate(t.Title, titleWidth-2))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			idCol.Render(t.ID),
			statusCol.Render(renderStatus(t.Status)),
			titleCol.Render(title),
			numCol.Render(renderMinutes(t.TotalMinutes)),
			numCol.Render(fmt.Sprintf("%d/%d", t.SubtaskDone, t.SubtaskCount)),
		))
		if t.ProjectName != nil && *t.ProjectName != "" {
			b.WriteString(mutedStyle.Render(" [" + *t.ProjectName + "]"))
		}
	}
	return b.String()
}

func renderProjects(projects []models.Project) string {
	if len(projects) == 0 {
		return mutedStyle.Render("No projects.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		idCol.Render("ID"), titleCol.Render("NAME"), numCol.Render("TASKS"), numCol.Render("TIME"))))
	for _, p := range projects {
		name := truncate(p.Name, titleWidth)
		if p.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("● ") + name
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			idCol.Render(p.ID),
			titleCol.Render(name),
			numCol.Render(fmt.Sprintf("%d", p.TaskCount)),
			numCol.Render(renderMinutes(p.TotalMinutes)),
		))
	}
	return b.String()
}

func renderEntries(entries []models.TimeEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No time entries.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		idCol.Render("ID"), titleCol.Render("TASK"), numCol.Render("TIME"), "NOTES")))
	for _, e := range entries {
		task := e.TaskID
		if e.TaskTitle != nil && *e.TaskTitle != "" {
			task = *e.TaskTitle
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			idCol.Render(e.ID),
			titleCol.Render(truncate(task, titleWidth)),
			numCol.Render(renderMinutes(e.DurationMinutes)),
			mutedStyle.Render(e.Notes),
		))
	}
	return b.String()
}

func renderSubtasks(subtasks []models.Subtask) string {
	if len(subtasks) == 0 {
		return mutedStyle.Render("No subtasks.")
	}

	var b strings.Builder
	for i, st := range subtasks {
		if i > 0 {
			b.WriteString("\n")
		}
		mark := "[ ]"
		if st.Completed {
			mark = statusStyles[models.StatusCompleted].Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s %s %s", mark, idCol.Render(st.ID), st.Title))
	}
	return b.String()
}

func renderTimer(active *models.ActiveTimer, elapsed int64) string {
	if active == nil {
		return mutedStyle.Render("No timer running.")
	}
	title := active.TaskTitle
	if title == "" {
		title = active.TaskID
	}
	s := fmt.Sprintf("%s %s", timerStyle.Render(renderElapsed(elapsed)), title)
	if active.Notes != "" {
		s += mutedStyle.Render(" (" + active.Notes + ")")
	}
	return s
}

func renderDashboard(d *models.DashboardSummary) string {
	if d == nil {
		return mutedStyle.Render("No dashboard data.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	fmt.Fprintf(&b, "\n  total %d  pending %d  in progress %d  completed %d",
		d.TotalTasks, d.PendingTasks, d.InProgressTasks, d.CompletedTasks)
	b.WriteString("\n" + headerStyle.Render("Time"))
	fmt.Fprintf(&b, "\n  today %s (%d entries)  this month %s",
		renderMinutes(d.TotalMinutesToday), d.TotalEntriesToday, renderMinutes(d.TotalMinutesMonth))

	if len(d.ProjectStats) > 0 {
		b.WriteString("\n" + headerStyle.Render("Projects"))
		for _, p := range d.ProjectStats {
			fmt.Fprintf(&b, "\n  %s %d tasks, %s", titleCol.Render(truncate(p.Name, titleWidth)), p.TaskCount, renderMinutes(p.TotalMinutes))
		}
	}
	if len(d.RecentEntries) > 0 {
		b.WriteString("\n" + headerStyle.Render("Recent"))
		for _, e := range d.RecentEntries {
			fmt.Fprintf(&b, "\n  %s %s", titleCol.Render(truncate(e.TaskTitle, titleWidth)), renderMinutes(e.DurationMinutes))
		}
	}
	return b.String()
}

func renderUser(u *models.UserProfile) string {
	if u == nil {
		return mutedStyle.Render("Profile not loaded.")
	}
	s := headerStyle.Render(u.Username)
	if u.FullName != "" {
		s += " " + u.FullName
	}
	return s + mutedStyle.Render(fmt.Sprintf(" (id %s, role %s)", u.ID, u.Role))
}
