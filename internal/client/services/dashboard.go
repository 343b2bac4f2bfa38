package services

import (
	"context"

	"github.com/sicmundus/tracker/internal/client/models"
)

func (s *EntityStore) FetchDashboard(ctx context.Context) {
	s.beginFetch(true)
	dash, err := s.client.Dashboard(ctx)
	s.endFetch(ctx, true, "dashboard", err, func() {
		s.dashboard = dash
	})
}

// Dashboard returns the last loaded summary, nil before the first load.
func (s *EntityStore) Dashboard() *models.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dashboard == nil {
		return nil
	}
	d := *s.dashboard
	d.RecentEntries = append([]models.RecentEntry(nil), d.RecentEntries...)
	d.ProjectStats = append([]models.ProjectStat(nil), d.ProjectStats...)
	d.DailyMinutes = append([]models.DailyMinutes(nil), d.DailyMinutes...)
	return &d
}
