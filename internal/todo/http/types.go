package http

import (
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
)

// Wire representations. Password hashes never appear here.

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

type AdminTokenResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	Admin     AdminResponse `json:"admin"`
}

type DashboardResponse struct {
	TotalUsers      int64            `json:"total_users"`
	TotalTasks      int64            `json:"total_tasks"`
	CompletedTasks  int64            `json:"completed_tasks"`
	PendingTasks    int64            `json:"pending_tasks"`
	TasksByCategory map[string]int64 `json:"tasks_by_category"`
	RecentTasks     []TaskResponse   `json:"recent_tasks"`
}

// MessageResponse carries a human-readable acknowledgement for operations
// with no other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toAdminResponse(a domain.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Name: a.Name, Email: a.Email, Role: string(a.Role), CreatedAt: a.CreatedAt}
}

func toTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
