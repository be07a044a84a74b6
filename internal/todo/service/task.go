package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/mail"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
)

// TaskService implements both task surfaces. The user-facing operations
// enforce ownership by re-deriving it from the stored task inside the same
// operation that mutates; the admin-facing operations deliberately skip the
// check, so an admin can manage any task. That asymmetry is the design:
// user routes always check, admin routes never do.
type TaskService struct {
	Store store.Store
	Mail  *mail.Dispatcher
}

// CreateTask creates a task owned by the acting user.
func (s *TaskService) CreateTask(ctx context.Context, owner domain.User, title, description, category string) (domain.Task, error) {
	task := domain.Task{
		ID:          idx.New().String(),
		OwnerID:     owner.ID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    normalizeCategory(category),
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}

	s.notify(owner.Email, mail.KindTaskAdded, task)
	return task, nil
}

// ListOwnedTasks returns the acting user's tasks.
func (s *TaskService) ListOwnedTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.Store.Tasks().ListTasksByOwner(ctx, ownerID)
}

// UpdateOwnedTask updates a task after confirming the acting user owns it.
func (s *TaskService) UpdateOwnedTask(ctx context.Context, actor domain.User, taskID string, changes domain.TaskChanges) (domain.Task, error) {
	if changes.Category != nil {
		normalized := normalizeCategory(*changes.Category)
		changes.Category = &normalized
	}

	task, err := s.mutateOwned(ctx, actor.ID, taskID, changes)
	if err != nil {
		return domain.Task{}, err
	}

	s.notify(actor.Email, mail.KindTaskUpdated, task)
	return task, nil
}

// DeleteOwnedTask deletes a task after confirming the acting user owns it.
func (s *TaskService) DeleteOwnedTask(ctx context.Context, actor domain.User, taskID string) error {
	var deleted domain.Task

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		task, err := tx.Tasks().GetTaskByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if task.OwnerID != actor.ID {
			return ErrNotOwner
		}

		deleted = task
		return tx.Tasks().DeleteTask(ctx, taskID)
	})
	if err != nil {
		return err
	}

	s.notify(actor.Email, mail.KindTaskDeleted, deleted)
	return nil
}

// ToggleOwnedTask flips a task's completed flag after confirming ownership.
func (s *TaskService) ToggleOwnedTask(ctx context.Context, actor domain.User, taskID string) (domain.Task, error) {
	task, err := s.toggle(ctx, taskID, &actor.ID)
	if err != nil {
		return domain.Task{}, err
	}

	s.notify(actor.Email, mail.KindTaskCompleted, task)
	return task, nil
}

/* Admin surface: ownership bypass. Only reachable through admin-gated routes. */

// ListAllTasks returns every task in the system.
func (s *TaskService) ListAllTasks(ctx context.Context) ([]domain.Task, error) {
	return s.Store.Tasks().ListTasks(ctx)
}

// CreateTaskFor creates a task on behalf of an arbitrary user.
func (s *TaskService) CreateTaskFor(ctx context.Context, userID, title, description, category string) (domain.Task, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrNotFound
		}
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:          idx.New().String(),
		OwnerID:     userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    normalizeCategory(category),
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask updates any task, regardless of owner.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, changes domain.TaskChanges) (domain.Task, error) {
	if changes.Category != nil {
		normalized := normalizeCategory(*changes.Category)
		changes.Category = &normalized
	}
	return s.mutateOwned(ctx, "", taskID, changes)
}

// DeleteTask deletes any task, regardless of owner.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	err := s.Store.Tasks().DeleteTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ToggleTask flips any task's completed flag, regardless of owner.
func (s *TaskService) ToggleTask(ctx context.Context, taskID string) (domain.Task, error) {
	return s.toggle(ctx, taskID, nil)
}

// mutateOwned loads, checks ownership when ownerID is non-empty, and applies
// changes, all inside one transaction so the ownership snapshot cannot go
// stale between check and act.
func (s *TaskService) mutateOwned(ctx context.Context, ownerID, taskID string, changes domain.TaskChanges) (domain.Task, error) {
	var updated domain.Task

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		task, err := tx.Tasks().GetTaskByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if ownerID != "" && task.OwnerID != ownerID {
			return ErrNotOwner
		}

		if err := tx.Tasks().UpdateTask(ctx, taskID, changes); err != nil {
			return err
		}

		updated, err = tx.Tasks().GetTaskByID(ctx, taskID)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	return updated, nil
}

func (s *TaskService) toggle(ctx context.Context, taskID string, ownerID *string) (domain.Task, error) {
	var updated domain.Task

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		task, err := tx.Tasks().GetTaskByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if ownerID != nil && task.OwnerID != *ownerID {
			return ErrNotOwner
		}

		flipped := !task.Completed
		if err := tx.Tasks().UpdateTask(ctx, taskID, domain.TaskChanges{Completed: &flipped}); err != nil {
			return err
		}

		updated, err = tx.Tasks().GetTaskByID(ctx, taskID)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	return updated, nil
}

func (s *TaskService) notify(email string, kind mail.Kind, task domain.Task) {
	if s.Mail == nil {
		return
	}
	s.Mail.Enqueue(mail.Message{
		To:   email,
		Kind: kind,
		Data: map[string]string{
			"title":     task.Title,
			"category":  task.Category,
			"completed": strconv.FormatBool(task.Completed),
		},
	})
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return domain.DefaultTaskCategory
	}
	return category
}
