// Package mail is the outbound notification collaborator. Deliveries are
// fire-and-forget: handlers enqueue a message and move on, a background
// worker sends it, and failures are logged and swallowed. Nothing here is
// ever surfaced to an HTTP caller.
package mail

import "context"

// Kind selects the notification template.
type Kind string

const (
	KindTaskAdded     Kind = "task_added"
	KindTaskUpdated   Kind = "task_updated"
	KindTaskDeleted   Kind = "task_deleted"
	KindTaskCompleted Kind = "task_completed"
	KindPasswordReset Kind = "password_reset"
)

// Message is one queued notification.
type Message struct {
	To   string
	Kind Kind

	// Data holds template values, e.g. "title" for task notifications or
	// "token" for password resets.
	Data map[string]string
}

// Sender performs the actual delivery.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
