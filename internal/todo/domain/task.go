package domain

import "time"

// DefaultTaskCategory is used when a task is created without a category.
const DefaultTaskCategory = "others"

type Task struct {
	ID          string
	OwnerID     string // user id; ownership checks read this, never client input
	Title       string
	Description string
	Category    string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskChanges carries the optional fields of a task update. Nil means
// "leave unchanged".
type TaskChanges struct {
	Title       *string
	Description *string
	Category    *string
	Completed   *bool
}
