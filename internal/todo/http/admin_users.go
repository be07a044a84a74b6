package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
)

// AdminUsersHandler is the admin user-management surface.
type AdminUsersHandler struct {
	UserService *service.UserService
}

type AdminCreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// Password is optional; empty keeps the current one.
	Password string `json:"password"`
}

func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminUsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(w, "name, email and password are required")
		return
	}

	user, err := h.UserService.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *AdminUsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	user, err := h.UserService.Update(r.Context(), r.PathValue("id"), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AdminUsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "user deleted"})
}
