package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
)

// AdminTasksHandler is the admin task-management surface. It works on any
// user's tasks; none of its operations carry an ownership check.
type AdminTasksHandler struct {
	TaskService *service.TaskService
}

type AdminCreateTaskRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *AdminTasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.ListAllTasks(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h *AdminTasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Title == "" {
		badRequest(w, "user_id and title are required")
		return
	}

	task, err := h.TaskService.CreateTaskFor(r.Context(), req.UserID, req.Title, req.Description, req.Category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *AdminTasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	task, err := h.TaskService.UpdateTask(r.Context(), r.PathValue("id"), req.changes())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *AdminTasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "task deleted"})
}

func (h *AdminTasksHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.ToggleTask(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}
