package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
)

func TestDashboardStats(t *testing.T) {
	st := newTestStore(t)
	tasks := &TaskService{Store: st}
	svc := &DashboardService{Store: st}
	ctx := context.Background()

	alice := createTestUser(t, st, "alice@example.com", "pw")
	bob := createTestUser(t, st, "bob@example.com", "pw")

	t1, err := tasks.CreateTask(ctx, alice, "one", "", "work")
	require.NoError(t, err)
	_, err = tasks.CreateTask(ctx, alice, "two", "", "work")
	require.NoError(t, err)
	_, err = tasks.CreateTask(ctx, bob, "three", "", "")
	require.NoError(t, err)

	done := true
	_, err = tasks.UpdateTask(ctx, t1.ID, domain.TaskChanges{Completed: &done})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalUsers)
	require.EqualValues(t, 3, stats.TotalTasks)
	require.EqualValues(t, 1, stats.CompletedTasks)
	require.EqualValues(t, 2, stats.PendingTasks)
	require.EqualValues(t, 2, stats.TasksByCategory["work"])
	require.EqualValues(t, 1, stats.TasksByCategory[domain.DefaultTaskCategory])
	require.Len(t, stats.RecentTasks, 3)
}
