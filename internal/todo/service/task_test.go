package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
)

func TestCreateTask(t *testing.T) {
	st := newTestStore(t)
	svc := &TaskService{Store: st}
	ctx := context.Background()

	owner := createTestUser(t, st, "owner@example.com", "pw")

	t.Run("defaults category", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, owner, "buy milk", "two litres", "")
		require.NoError(t, err)
		require.Equal(t, owner.ID, task.OwnerID)
		require.Equal(t, domain.DefaultTaskCategory, task.Category)
		require.False(t, task.Completed)
	})

	t.Run("keeps explicit category", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, owner, "file taxes", "", "finance")
		require.NoError(t, err)
		require.Equal(t, "finance", task.Category)
	})
}

func TestOwnershipEnforcement(t *testing.T) {
	st := newTestStore(t)
	svc := &TaskService{Store: st}
	ctx := context.Background()

	alice := createTestUser(t, st, "alice@example.com", "pw")
	mallory := createTestUser(t, st, "mallory@example.com", "pw")

	task, err := svc.CreateTask(ctx, alice, "private", "", "")
	require.NoError(t, err)

	title := "hijacked"
	t.Run("update by non-owner", func(t *testing.T) {
		_, err := svc.UpdateOwnedTask(ctx, mallory, task.ID, domain.TaskChanges{Title: &title})
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("toggle by non-owner", func(t *testing.T) {
		_, err := svc.ToggleOwnedTask(ctx, mallory, task.ID)
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("delete by non-owner", func(t *testing.T) {
		require.ErrorIs(t, svc.DeleteOwnedTask(ctx, mallory, task.ID), ErrNotOwner)
	})

	t.Run("task untouched after denied attempts", func(t *testing.T) {
		got, err := st.Tasks().GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		require.Equal(t, "private", got.Title)
		require.False(t, got.Completed)
	})

	t.Run("owner operations succeed", func(t *testing.T) {
		updated, err := svc.UpdateOwnedTask(ctx, alice, task.ID, domain.TaskChanges{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "hijacked", updated.Title)

		toggled, err := svc.ToggleOwnedTask(ctx, alice, task.ID)
		require.NoError(t, err)
		require.True(t, toggled.Completed)

		require.NoError(t, svc.DeleteOwnedTask(ctx, alice, task.ID))
	})

	t.Run("missing task reports not found, not ownership", func(t *testing.T) {
		_, err := svc.UpdateOwnedTask(ctx, alice, idx.New().String(), domain.TaskChanges{Title: &title})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminTaskOperationsBypassOwnership(t *testing.T) {
	st := newTestStore(t)
	svc := &TaskService{Store: st}
	ctx := context.Background()

	alice := createTestUser(t, st, "alice@example.com", "pw")
	bob := createTestUser(t, st, "bob@example.com", "pw")

	aliceTask, err := svc.CreateTask(ctx, alice, "alice task", "", "")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, bob, "bob task", "", "")
	require.NoError(t, err)

	t.Run("list all sees every owner", func(t *testing.T) {
		all, err := svc.ListAllTasks(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("admin mutates any owner's task", func(t *testing.T) {
		title := "retitled by admin"
		updated, err := svc.UpdateTask(ctx, aliceTask.ID, domain.TaskChanges{Title: &title})
		require.NoError(t, err)
		require.Equal(t, title, updated.Title)

		toggled, err := svc.ToggleTask(ctx, aliceTask.ID)
		require.NoError(t, err)
		require.True(t, toggled.Completed)

		require.NoError(t, svc.DeleteTask(ctx, aliceTask.ID))
	})

	t.Run("create for requires an existing user", func(t *testing.T) {
		_, err := svc.CreateTaskFor(ctx, idx.New().String(), "orphan", "", "")
		require.ErrorIs(t, err, ErrNotFound)

		task, err := svc.CreateTaskFor(ctx, bob.ID, "assigned", "", "work")
		require.NoError(t, err)
		require.Equal(t, bob.ID, task.OwnerID)
	})
}

func TestListOwnedTasksScopesToOwner(t *testing.T) {
	st := newTestStore(t)
	svc := &TaskService{Store: st}
	ctx := context.Background()

	alice := createTestUser(t, st, "alice@example.com", "pw")
	bob := createTestUser(t, st, "bob@example.com", "pw")

	_, err := svc.CreateTask(ctx, alice, "a1", "", "")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, alice, "a2", "", "")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, bob, "b1", "", "")
	require.NoError(t, err)

	tasks, err := svc.ListOwnedTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.Equal(t, alice.ID, task.OwnerID)
	}
}
