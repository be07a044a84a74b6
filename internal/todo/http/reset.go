package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
)

type ResetHandler struct {
	ResetService *service.ResetService
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// HandleForgot issues a reset token. The response is identical whether or
// not the email has an account.
func (h *ResetHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" {
		badRequest(w, "email is required")
		return
	}

	if err := h.ResetService.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "if that email has an account, a reset link has been sent",
	})
}

func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		badRequest(w, "token and new_password are required")
		return
	}

	if err := h.ResetService.ConsumeReset(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "password has been reset"})
}
