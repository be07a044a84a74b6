package service

import (
	"context"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
)

// recentTaskCount is how many tasks the dashboard lists as recent activity.
const recentTaskCount = 5

// DashboardService assembles the admin dashboard snapshot.
type DashboardService struct {
	Store store.Store
}

// Stats gathers the aggregate counters and recent tasks. The counts are
// read individually rather than in one transaction; the dashboard is an
// informational view and slight skew between counters is acceptable.
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	tasks := s.Store.Tasks()

	users, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	total, err := tasks.CountTasks(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	completed, err := tasks.CountCompletedTasks(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	byCategory, err := tasks.CountTasksByCategory(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	recent, err := tasks.ListRecentTasks(ctx, recentTaskCount)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	return domain.DashboardStats{
		TotalUsers:      users,
		TotalTasks:      total,
		CompletedTasks:  completed,
		PendingTasks:    total - completed,
		TasksByCategory: byCategory,
		RecentTasks:     recent,
	}, nil
}
